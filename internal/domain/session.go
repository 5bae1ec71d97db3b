package domain

import "time"

// SessionSnapshot es una copia de solo lectura del estado de una sesion de chat.
type SessionSnapshot struct {
	ID           string    `json:"id"`
	Messages     []Message `json:"messages"`
	Pending      bool      `json:"pending"`
	Draft        string    `json:"draft"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}
