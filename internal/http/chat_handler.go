package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-chat/internal/service"
)

// ChatHandler mantiene dependencias para endpoints de sesiones y mensajes.
type ChatHandler struct {
	logger   *zap.Logger
	sessions *service.SessionService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, sessions *service.SessionService) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		sessions: sessions,
	}
}

type textRequest struct {
	Text string `json:"text"`
}

// CreateSession maneja POST /chat/sessions.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	session, err := h.sessions.Create()
	if err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session.Snapshot()})
}

// GetSession maneja GET /chat/sessions/:id.
func (h *ChatHandler) GetSession(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session.Snapshot()})
}

// UpdateDraft maneja PUT /chat/sessions/:id/draft.
func (h *ChatHandler) UpdateDraft(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid draft request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	session.SetDraft(req.Text)
	c.JSON(http.StatusOK, gin.H{"session": session.Snapshot()})
}

// PostMessage maneja POST /chat/sessions/:id/messages.
// Espera a que la completion se resuelva; si el cliente se desconecta antes,
// la request sigue y el resultado queda en el transcript.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	done, accepted := session.Submit(req.Text)
	if !accepted {
		switch {
		case strings.TrimSpace(req.Text) == "":
			c.JSON(http.StatusOK, gin.H{"accepted": false, "session": session.Snapshot()})
		case session.Pending():
			c.JSON(http.StatusConflict, gin.H{
				"error":   "a reply is still pending",
				"session": session.Snapshot(),
			})
		default:
			// la sesion se cerro entre el lookup y el envio
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		}
		return
	}

	select {
	case <-done:
		c.JSON(http.StatusOK, gin.H{"accepted": true, "session": session.Snapshot()})
	case <-c.Request.Context().Done():
		h.logger.Info("client left before completion", zap.String("session_id", session.ID()))
		c.JSON(http.StatusAccepted, gin.H{"accepted": true, "session": session.Snapshot()})
	}
}

// EndSession maneja DELETE /chat/sessions/:id.
func (h *ChatHandler) EndSession(c *gin.Context) {
	if err := h.sessions.End(c.Param("id")); err != nil {
		h.writeSessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ChatHandler) lookup(c *gin.Context) (*service.ConversationSession, bool) {
	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.writeSessionError(c, err)
		return nil, false
	}
	return session, true
}

func (h *ChatHandler) writeSessionError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	h.logger.Error("session lookup failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
}
