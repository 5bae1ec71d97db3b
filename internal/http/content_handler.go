package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/service"
)

// ContentHandler sirve los datasets que renderizan las secciones del portfolio.
type ContentHandler struct {
	logger  *zap.Logger
	content *service.ContentService
	handle  string
}

func NewContentHandler(logger *zap.Logger, content *service.ContentService, ownerHandle string) *ContentHandler {
	return &ContentHandler{
		logger:  logger,
		content: content,
		handle:  ownerHandle,
	}
}

type projectView struct {
	domain.Project
	URL       string   `json:"url"`
	TopTopics []string `json:"topTopics"`
}

// ListProjects maneja GET /projects?group=featured|mcp.
func (h *ContentHandler) ListProjects(c *gin.Context) {
	group := c.Query("group")
	projects, err := h.content.Projects(c.Request.Context(), group)
	if err != nil {
		if errors.Is(err, service.ErrUnknownProjectGroup) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown project group"})
			return
		}
		h.logger.Error("list projects failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch projects"})
		return
	}

	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, projectView{
			Project:   p,
			URL:       p.URL(h.handle),
			TopTopics: p.TopTopics(3),
		})
	}
	c.JSON(http.StatusOK, gin.H{"projects": views})
}

// ListExperience maneja GET /experience.
func (h *ContentHandler) ListExperience(c *gin.Context) {
	items, err := h.content.Experience(c.Request.Context())
	if err != nil {
		h.logger.Error("list experience failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch experience"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"experience": items})
}
