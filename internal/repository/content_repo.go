package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"portfolio-chat/internal/domain"
)

// ContentRepository expone los datasets de solo lectura del portfolio.
type ContentRepository interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListExperience(ctx context.Context) ([]domain.Experience, error)
}

// JSONContentRepository lee repos.json y experience.json una sola vez.
type JSONContentRepository struct {
	projects   []domain.Project
	experience []domain.Experience
}

// NewJSONContentRepository carga ambos archivos; un archivo faltante o invalido es un error de arranque.
func NewJSONContentRepository(projectsPath, experiencePath string) (*JSONContentRepository, error) {
	var projects []domain.Project
	if err := readJSONFile(projectsPath, &projects); err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	var experience []domain.Experience
	if err := readJSONFile(experiencePath, &experience); err != nil {
		return nil, fmt.Errorf("load experience: %w", err)
	}

	return &JSONContentRepository{
		projects:   projects,
		experience: experience,
	}, nil
}

func (r *JSONContentRepository) ListProjects(_ context.Context) ([]domain.Project, error) {
	out := make([]domain.Project, len(r.projects))
	copy(out, r.projects)
	return out, nil
}

func (r *JSONContentRepository) ListExperience(_ context.Context) ([]domain.Experience, error) {
	out := make([]domain.Experience, len(r.experience))
	copy(out, r.experience)
	return out, nil
}

func readJSONFile(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
