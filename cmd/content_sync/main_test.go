package main

import (
	"context"
	"errors"
	"testing"

	"portfolio-chat/internal/domain"
)

type stubContentRepo struct {
	projects      []domain.Project
	experience    []domain.Experience
	projectsErr   error
	experienceErr error
}

func (s stubContentRepo) ListProjects(context.Context) ([]domain.Project, error) {
	return s.projects, s.projectsErr
}

func (s stubContentRepo) ListExperience(context.Context) ([]domain.Experience, error) {
	return s.experience, s.experienceErr
}

func TestReadContent(t *testing.T) {
	repo := stubContentRepo{
		projects:   []domain.Project{{Name: "FerroTeX"}},
		experience: []domain.Experience{{Year: "2024"}},
	}
	projects, experience, err := readContent(context.Background(), repo)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(projects) != 1 || len(experience) != 1 {
		t.Fatalf("unexpected content %+v %+v", projects, experience)
	}
}

func TestReadContent_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	cases := map[string]stubContentRepo{
		"projects":   {projectsErr: boom},
		"experience": {experienceErr: boom},
	}
	for name, repo := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := readContent(context.Background(), repo); !errors.Is(err, boom) {
				t.Fatalf("expected wrapped error, got %v", err)
			}
		})
	}
}
