package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"portfolio-chat/internal/llm"
)

func TestSessionService_CreateGetEnd(t *testing.T) {
	svc := NewSessionService(zap.NewNop(), testPrompt, &llm.MockClient{Response: "ok"}, time.Second, time.Minute)

	a, err := svc.Create()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, _ := svc.Create()
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct session ids")
	}
	if svc.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", svc.Len())
	}

	got, err := svc.Get(" " + a.ID() + " ")
	if err != nil || got != a {
		t.Fatalf("expected to get session a, got %v err=%v", got, err)
	}

	if err := svc.End(a.ID()); err != nil {
		t.Fatalf("expected no error ending session, got %v", err)
	}
	if _, err := svc.Get(a.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := svc.End(a.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on double end, got %v", err)
	}
}

func TestSessionService_SessionsAreIndependent(t *testing.T) {
	client := newBlockingClient("answer", nil)
	svc := NewSessionService(zap.NewNop(), testPrompt, client, time.Second, time.Minute)

	a, _ := svc.Create()
	b, _ := svc.Create()

	doneA, ok := a.Submit("from a")
	if !ok {
		t.Fatalf("expected a accepted")
	}
	<-client.started
	doneB, ok := b.Submit("from b")
	if !ok {
		t.Fatalf("expected b accepted while a is pending")
	}
	<-client.started

	close(client.release)
	waitDone(t, doneA)
	waitDone(t, doneB)

	if len(a.Messages()) != 3 || len(b.Messages()) != 3 {
		t.Fatalf("expected both transcripts to have 3 messages")
	}
}

func TestSessionService_SweepIdle(t *testing.T) {
	client := newBlockingClient("late", nil)
	svc := NewSessionService(zap.NewNop(), testPrompt, client, time.Second, time.Minute)

	idle, _ := svc.Create()
	busy, _ := svc.Create()
	done, _ := busy.Submit("still thinking")
	<-client.started

	removed := svc.SweepIdle(time.Now().Add(2 * time.Minute))
	if removed != 1 {
		t.Fatalf("expected 1 session removed, got %d", removed)
	}
	if _, err := svc.Get(idle.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected idle session removed")
	}
	if _, err := svc.Get(busy.ID()); err != nil {
		t.Fatalf("expected pending session kept, got %v", err)
	}

	close(client.release)
	waitDone(t, done)

	if removed := svc.SweepIdle(time.Now()); removed != 0 {
		t.Fatalf("expected fresh session kept, removed %d", removed)
	}
}

func TestSessionService_JanitorStops(t *testing.T) {
	svc := NewSessionService(zap.NewNop(), testPrompt, &llm.MockClient{}, time.Second, time.Nanosecond)
	if _, err := svc.Create(); err != nil {
		t.Fatalf("create: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	svc.StartJanitor(ctx, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for svc.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected janitor to sweep idle session")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
}

func TestSessionService_NotConfigured(t *testing.T) {
	var svc *SessionService
	if _, err := svc.Create(); !errors.Is(err, ErrSessionServiceNotConfigured) {
		t.Fatalf("expected ErrSessionServiceNotConfigured, got %v", err)
	}
	if _, err := svc.Get("x"); !errors.Is(err, ErrSessionServiceNotConfigured) {
		t.Fatalf("expected ErrSessionServiceNotConfigured, got %v", err)
	}
	if err := svc.End("x"); !errors.Is(err, ErrSessionServiceNotConfigured) {
		t.Fatalf("expected ErrSessionServiceNotConfigured, got %v", err)
	}
}

func TestSessionService_SweptSessionRejectsSubmit(t *testing.T) {
	client := &llm.MockClient{Response: "ok"}
	svc := NewSessionService(zap.NewNop(), testPrompt, client, time.Second, time.Minute)

	session, _ := svc.Create()
	if removed := svc.SweepIdle(time.Now().Add(2 * time.Minute)); removed != 1 {
		t.Fatalf("expected 1 session removed, got %d", removed)
	}

	// quien todavia tenga el puntero no puede lanzar una request sobre una sesion barrida
	if _, ok := session.Submit("late question"); ok {
		t.Fatalf("expected submit on swept session to be rejected")
	}
	if n := len(client.Requests()); n != 0 {
		t.Fatalf("expected no completion requests, got %d", n)
	}
}

func TestConversationSession_ExpireIfIdleChecksUnderOneLock(t *testing.T) {
	client := newBlockingClient("answer", nil)
	s := NewConversationSession(testPrompt, client, time.Second, nil)
	later := time.Now().Add(time.Hour)

	done, _ := s.Submit("in flight")
	<-client.started
	if s.expireIfIdle(later, time.Minute) {
		t.Fatalf("expected pending session not to expire")
	}

	close(client.release)
	waitDone(t, done)

	if s.expireIfIdle(time.Now(), time.Minute) {
		t.Fatalf("expected recently active session not to expire")
	}
	if !s.expireIfIdle(later, time.Minute) {
		t.Fatalf("expected idle session to expire")
	}
	if s.expireIfIdle(later, time.Minute) {
		t.Fatalf("expected already expired session to report false")
	}
	if _, ok := s.Submit("after expiry"); ok {
		t.Fatalf("expected submit after expiry to be rejected")
	}
}

func TestSessionService_EndRejectsFurtherSubmits(t *testing.T) {
	svc := NewSessionService(zap.NewNop(), testPrompt, &llm.MockClient{Response: "ok"}, time.Second, time.Minute)
	session, _ := svc.Create()
	if err := svc.End(session.ID()); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, ok := session.Submit("hello"); ok {
		t.Fatalf("expected submit on ended session to be rejected")
	}
}
