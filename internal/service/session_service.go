package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"portfolio-chat/internal/llm"
)

var (
	ErrSessionNotFound             = errors.New("session not found")
	ErrSessionServiceNotConfigured = errors.New("session service not configured")
)

// SessionService mantiene en memoria las sesiones de chat vivas.
// Nada se persiste: una sesion muere al cerrarse el widget, por inactividad o al reiniciar el proceso.
type SessionService struct {
	logger  *zap.Logger
	prompt  PromptContext
	client  llm.CompletionClient
	timeout time.Duration
	idleTTL time.Duration

	mu       sync.RWMutex
	sessions map[string]*ConversationSession
}

func NewSessionService(logger *zap.Logger, prompt PromptContext, client llm.CompletionClient, completionTimeout, idleTTL time.Duration) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	return &SessionService{
		logger:   logger,
		prompt:   prompt,
		client:   client,
		timeout:  completionTimeout,
		idleTTL:  idleTTL,
		sessions: make(map[string]*ConversationSession),
	}
}

// Create abre una sesion nueva con el saludo inicial.
func (s *SessionService) Create() (*ConversationSession, error) {
	if s == nil || s.sessions == nil {
		return nil, ErrSessionServiceNotConfigured
	}
	session := NewConversationSession(s.prompt, s.client, s.timeout, s.logger)

	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()

	s.logger.Info("session created", zap.String("session_id", session.ID()))
	return session, nil
}

func (s *SessionService) Get(id string) (*ConversationSession, error) {
	if s == nil || s.sessions == nil {
		return nil, ErrSessionServiceNotConfigured
	}
	id = strings.TrimSpace(id)

	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// End descarta la sesion. Una completion en vuelo termina igual pero su resultado se pierde.
func (s *SessionService) End(id string) error {
	if s == nil || s.sessions == nil {
		return ErrSessionServiceNotConfigured
	}
	id = strings.TrimSpace(id)

	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	session.close()
	s.logger.Info("session ended", zap.String("session_id", id))
	return nil
}

func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// SweepIdle elimina las sesiones sin actividad por mas de idleTTL que no tengan requests pendientes.
func (s *SessionService) SweepIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.expireIfIdle(now, s.idleTTL) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartJanitor barre periodicamente las sesiones inactivas hasta que ctx termine.
func (s *SessionService) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		s.logger.Info("session janitor started", zap.Duration("interval", interval), zap.Duration("idle_ttl", s.idleTTL))

		for {
			select {
			case now := <-ticker.C:
				if removed := s.SweepIdle(now); removed > 0 {
					s.logger.Info("idle sessions swept", zap.Int("removed", removed), zap.Int("remaining", s.Len()))
				}
			case <-ctx.Done():
				s.logger.Info("session janitor stopped", zap.Error(ctx.Err()))
				return
			}
		}
	}()
}
