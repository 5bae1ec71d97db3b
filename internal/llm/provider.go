package llm

import (
	"context"
	"errors"
)

// ErrRemoteUnavailable agrupa todas las fallas del servicio de completions:
// red, respuesta malformada, autenticacion o cuota agotada.
var ErrRemoteUnavailable = errors.New("completion service unavailable")

// CompletionRequest es una llamada logica por turno del visitante.
type CompletionRequest struct {
	Instructions   string
	Acknowledgment string
	Message        string
}

// CompletionClient define la interfaz para generar respuestas con un LLM.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
