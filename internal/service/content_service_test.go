package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"portfolio-chat/internal/domain"
)

type mockContentRepo struct {
	projects   []domain.Project
	experience []domain.Experience
	err        error
}

func (m *mockContentRepo) ListProjects(context.Context) ([]domain.Project, error) {
	return m.projects, m.err
}

func (m *mockContentRepo) ListExperience(context.Context) ([]domain.Experience, error) {
	return m.experience, m.err
}

func sampleProjects() []domain.Project {
	return []domain.Project{
		{Name: "IPFS"},
		{Name: "godot-mcp"},
		{Name: "FerroTeX"},
		{Name: "random-tool"},
		{Name: "blender-mcp"},
	}
}

func names(projects []domain.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Name)
	}
	return out
}

func TestContentService_ProjectsByGroup(t *testing.T) {
	repo := &mockContentRepo{projects: sampleProjects()}
	svc := NewContentService(repo, []string{"FerroTeX", " IPFS ", ""}, []string{"godot-mcp", "blender-mcp"})

	cases := []struct {
		group string
		want  []string
	}{
		{"", []string{"IPFS", "godot-mcp", "FerroTeX", "random-tool", "blender-mcp"}},
		{"featured", []string{"IPFS", "FerroTeX"}},
		{" MCP ", []string{"godot-mcp", "blender-mcp"}},
	}
	for _, c := range cases {
		got, err := svc.Projects(context.Background(), c.group)
		if err != nil {
			t.Fatalf("group %q: expected no error, got %v", c.group, err)
		}
		gotNames := names(got)
		if len(gotNames) != len(c.want) {
			t.Fatalf("group %q: expected %v, got %v", c.group, c.want, gotNames)
		}
		for i := range c.want {
			if gotNames[i] != c.want[i] {
				t.Fatalf("group %q: expected %v, got %v", c.group, c.want, gotNames)
			}
		}
	}
}

func TestContentService_UnknownGroup(t *testing.T) {
	svc := NewContentService(&mockContentRepo{}, nil, nil)
	if _, err := svc.Projects(context.Background(), "archived"); !errors.Is(err, ErrUnknownProjectGroup) {
		t.Fatalf("expected ErrUnknownProjectGroup, got %v", err)
	}
}

func TestContentService_RepoErrors(t *testing.T) {
	svc := NewContentService(&mockContentRepo{err: errors.New("db down")}, nil, nil)
	if _, err := svc.Projects(context.Background(), ""); err == nil {
		t.Fatalf("expected error from projects")
	}
	if _, err := svc.Experience(context.Background()); err == nil {
		t.Fatalf("expected error from experience")
	}
}

func TestContentService_EmptyDatasetsAreNonNil(t *testing.T) {
	svc := NewContentService(&mockContentRepo{}, nil, nil)
	projects, err := svc.Projects(context.Background(), "")
	if err != nil || projects == nil {
		t.Fatalf("expected empty non-nil projects, got %v err=%v", projects, err)
	}
	exp, err := svc.Experience(context.Background())
	if err != nil || exp == nil {
		t.Fatalf("expected empty non-nil experience, got %v err=%v", exp, err)
	}
}

func TestContentService_NotConfigured(t *testing.T) {
	var svc *ContentService
	if _, err := svc.Projects(context.Background(), ""); !errors.Is(err, ErrContentNotConfigured) {
		t.Fatalf("expected ErrContentNotConfigured, got %v", err)
	}
	if _, err := svc.Experience(context.Background()); !errors.Is(err, ErrContentNotConfigured) {
		t.Fatalf("expected ErrContentNotConfigured, got %v", err)
	}
}

func TestContentService_PromptContext(t *testing.T) {
	repo := &mockContentRepo{
		projects:   []domain.Project{{Name: "FerroTeX", Description: "LaTeX engine"}},
		experience: []domain.Experience{{Year: "2024", Title: "Engineer", Company: "Acme"}},
	}
	svc := NewContentService(repo, nil, nil)

	pc, err := svc.PromptContext(context.Background(), testPersona())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(pc.Instructions, `"name":"FerroTeX"`) || !strings.Contains(pc.Instructions, `"company":"Acme"`) {
		t.Fatalf("expected content embedded:\n%s", pc.Instructions)
	}
}
