package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/llm"
)

// CompletionErrorText reemplaza la respuesta del asistente cuando falla el servicio remoto.
// Nunca incluye el detalle del error.
const CompletionErrorText = "Error: Connection interrupted. Please try again."

const defaultCompletionTimeout = 30 * time.Second

// ConversationSession guarda el transcript de un visitante y media cada envio.
// Como maximo hay una completion en vuelo; las respuestas se agregan en el orden
// en que se enviaron las preguntas.
type ConversationSession struct {
	id        string
	prompt    PromptContext
	client    llm.CompletionClient
	timeout   time.Duration
	logger    *zap.Logger
	createdAt time.Time

	mu           sync.Mutex
	messages     []domain.Message
	pending      bool
	turn         uint64
	closed       bool
	draft        string
	done         chan struct{}
	lastActivity time.Time
}

// NewConversationSession crea la sesion con el saludo inicial como unico mensaje.
func NewConversationSession(prompt PromptContext, client llm.CompletionClient, timeout time.Duration, logger *zap.Logger) *ConversationSession {
	if timeout <= 0 {
		timeout = defaultCompletionTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now().UTC()
	s := &ConversationSession{
		id:           uuid.NewString(),
		prompt:       prompt,
		client:       client,
		timeout:      timeout,
		createdAt:    now,
		lastActivity: now,
	}
	s.logger = logger.With(zap.String("session_id", s.id))
	s.messages = []domain.Message{newMessage(domain.RoleAssistant, prompt.Greeting)}
	return s
}

func (s *ConversationSession) ID() string {
	return s.id
}

// Submit agrega el mensaje del visitante y lanza la completion en segundo plano.
// Es un no-op si el texto esta vacio o si ya hay una request pendiente; en ese
// caso devuelve accepted=false. El canal done se cierra cuando la request se resuelve.
func (s *ConversationSession) Submit(text string) (done <-chan struct{}, accepted bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, false
	}
	if s.pending {
		s.mu.Unlock()
		s.logger.Debug("submit dropped, request already pending")
		return nil, false
	}
	s.messages = append(s.messages, newMessage(domain.RoleVisitor, text))
	s.draft = ""
	s.pending = true
	s.turn++
	turn := s.turn
	s.lastActivity = time.Now().UTC()
	ch := make(chan struct{})
	s.done = ch
	s.mu.Unlock()

	go s.complete(turn, text, ch)

	return ch, true
}

// complete corre la llamada remota. El visitante no puede cancelarla; solo el timeout la corta.
func (s *ConversationSession) complete(turn uint64, text string, done chan struct{}) {
	defer close(done)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	reply, err := s.callClient(ctx, text)
	if err != nil {
		s.completionFailed(turn, err)
		return
	}
	s.logger.Info("completion finished", zap.Duration("latency", time.Since(start)))
	s.completionSucceeded(turn, reply)
}

func (s *ConversationSession) callClient(ctx context.Context, text string) (reply string, err error) {
	if s.client == nil {
		return "", llm.ErrRemoteUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("completion client panic", zap.Any("panic", r))
			reply, err = "", llm.ErrRemoteUnavailable
		}
	}()
	return s.client.Complete(ctx, llm.CompletionRequest{
		Instructions:   s.prompt.Instructions,
		Acknowledgment: s.prompt.Acknowledgment,
		Message:        text,
	})
}

// completionSucceeded agrega la respuesta del asistente y libera la sesion.
// Solo la goroutine del turno la llama; devuelve false si turn no es el turno pendiente.
func (s *ConversationSession) completionSucceeded(turn uint64, text string) bool {
	return s.resolve(turn, text)
}

// completionFailed agrega el mensaje de error fijo y libera la sesion para reintentar.
// El detalle del error solo va al log.
func (s *ConversationSession) completionFailed(turn uint64, err error) bool {
	s.logger.Warn("completion failed", zap.Error(err))
	return s.resolve(turn, CompletionErrorText)
}

func (s *ConversationSession) resolve(turn uint64, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending || turn != s.turn {
		return false
	}
	s.messages = append(s.messages, newMessage(domain.RoleAssistant, text))
	s.pending = false
	s.lastActivity = time.Now().UTC()
	return true
}

// SetDraft guarda el texto que el visitante esta escribiendo.
func (s *ConversationSession) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
	s.lastActivity = time.Now().UTC()
}

// Pending indica si hay una completion en vuelo.
func (s *ConversationSession) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Wait devuelve un canal que se cierra cuando la request actual se resuelve.
// Si no hay request pendiente el canal ya esta cerrado.
func (s *ConversationSession) Wait() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending && s.done != nil {
		return s.done
	}
	ch := make(chan struct{})
	close(ch)
	return ch
}

// expireIfIdle cierra la sesion si no tiene request pendiente y lleva mas de ttl sin actividad.
// Chequeo y cierre ocurren bajo el mismo lock, asi un Submit concurrente no puede colarse.
func (s *ConversationSession) expireIfIdle(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.pending || now.Sub(s.lastActivity) <= ttl {
		return false
	}
	s.closed = true
	return true
}

// close rechaza envios futuros; una completion en vuelo termina igual.
func (s *ConversationSession) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Messages devuelve una copia del transcript.
func (s *ConversationSession) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Snapshot devuelve una copia consistente del estado para la capa de presentacion.
func (s *ConversationSession) Snapshot() domain.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]domain.Message, len(s.messages))
	copy(msgs, s.messages)
	return domain.SessionSnapshot{
		ID:           s.id,
		Messages:     msgs,
		Pending:      s.pending,
		Draft:        s.draft,
		CreatedAt:    s.createdAt,
		LastActivity: s.lastActivity,
	}
}

func newMessage(role domain.Role, text string) domain.Message {
	return domain.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}
