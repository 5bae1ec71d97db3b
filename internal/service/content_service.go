package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/repository"
)

const (
	ProjectGroupAll      = ""
	ProjectGroupFeatured = "featured"
	ProjectGroupMCP      = "mcp"
)

var (
	ErrContentNotConfigured = errors.New("content service not configured")
	ErrUnknownProjectGroup  = errors.New("unknown project group")
)

// ContentService expone proyectos y experiencia tal como los agrupa la pagina.
type ContentService struct {
	repo   repository.ContentRepository
	groups map[string][]string
}

func NewContentService(repo repository.ContentRepository, featured, mcp []string) *ContentService {
	return &ContentService{
		repo: repo,
		groups: map[string][]string{
			ProjectGroupFeatured: normalizeNames(featured),
			ProjectGroupMCP:      normalizeNames(mcp),
		},
	}
}

// Projects filtra por grupo conservando el orden del dataset.
func (s *ContentService) Projects(ctx context.Context, group string) ([]domain.Project, error) {
	if s == nil || s.repo == nil {
		return nil, ErrContentNotConfigured
	}

	group = strings.ToLower(strings.TrimSpace(group))
	var allow []string
	if group != ProjectGroupAll {
		names, ok := s.groups[group]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProjectGroup, group)
		}
		allow = names
	}

	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if group == ProjectGroupAll {
		if projects == nil {
			projects = []domain.Project{}
		}
		return projects, nil
	}

	set := make(map[string]struct{}, len(allow))
	for _, n := range allow {
		set[n] = struct{}{}
	}
	out := make([]domain.Project, 0, len(allow))
	for _, p := range projects {
		if _, ok := set[p.Name]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ContentService) Experience(ctx context.Context) ([]domain.Experience, error) {
	if s == nil || s.repo == nil {
		return nil, ErrContentNotConfigured
	}
	items, err := s.repo.ListExperience(ctx)
	if err != nil {
		return nil, fmt.Errorf("list experience: %w", err)
	}
	if items == nil {
		items = []domain.Experience{}
	}
	return items, nil
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// PromptContext lee el contenido una vez y arma el prompt fijo de todas las sesiones.
func (s *ContentService) PromptContext(ctx context.Context, persona domain.Persona) (PromptContext, error) {
	projects, err := s.Projects(ctx, ProjectGroupAll)
	if err != nil {
		return PromptContext{}, err
	}
	experience, err := s.Experience(ctx)
	if err != nil {
		return PromptContext{}, err
	}
	return PromptAssembler{}.Assemble(persona, projects, experience)
}
