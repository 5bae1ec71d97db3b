package domain

import "testing"

func TestProjectTopics(t *testing.T) {
	p := Project{
		Name: "FerroTeX",
		RepositoryTopics: []Topic{
			{Name: "rust"}, {Name: " "}, {Name: "latex"}, {Name: "typesetting"}, {Name: "compiler"},
		},
	}

	if got := p.TopicNames(); len(got) != 4 {
		t.Fatalf("expected blank topic skipped, got %v", got)
	}
	top := p.TopTopics(3)
	if len(top) != 3 || top[0] != "rust" || top[2] != "typesetting" {
		t.Fatalf("unexpected top topics %v", top)
	}
	if got := (Project{}).TopicNames(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil topics, got %v", got)
	}
}

func TestProjectURLAndRelease(t *testing.T) {
	p := Project{Name: "UE5-MCP"}
	if got := p.URL(" jxoesneon "); got != "https://github.com/jxoesneon/UE5-MCP" {
		t.Fatalf("unexpected url %q", got)
	}
	if p.ReleaseTag() != "" {
		t.Fatalf("expected empty release tag")
	}
	p.LatestRelease = &Release{TagName: "v1.2.0"}
	if p.ReleaseTag() != "v1.2.0" {
		t.Fatalf("unexpected release tag %q", p.ReleaseTag())
	}
}

func TestPersonaFirstName(t *testing.T) {
	if got := (Persona{Name: "Jose Eduardo Rojas Jimenez"}).FirstName(); got != "Jose" {
		t.Fatalf("expected Jose, got %q", got)
	}
	if got := (Persona{Handle: "jxoesneon"}).FirstName(); got != "jxoesneon" {
		t.Fatalf("expected handle fallback, got %q", got)
	}
}
