package domain

import (
	"strings"
	"time"
)

type Topic struct {
	Name string `json:"name"`
}

type Release struct {
	TagName string `json:"tagName"`
}

// Project replica el formato de repos.json (export de GitHub).
type Project struct {
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	RepositoryTopics []Topic   `json:"repositoryTopics"`
	LatestRelease    *Release  `json:"latestRelease"`
	StargazerCount   int       `json:"stargazerCount"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// TopicNames devuelve los nombres de todos los topics en orden.
func (p Project) TopicNames() []string {
	names := make([]string, 0, len(p.RepositoryTopics))
	for _, t := range p.RepositoryTopics {
		if name := strings.TrimSpace(t.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// TopTopics devuelve como maximo n topics, como los muestra la tarjeta del proyecto.
func (p Project) TopTopics(n int) []string {
	names := p.TopicNames()
	if n >= 0 && len(names) > n {
		names = names[:n]
	}
	return names
}

// URL arma el enlace al repositorio en GitHub.
func (p Project) URL(handle string) string {
	return "https://github.com/" + strings.TrimSpace(handle) + "/" + p.Name
}

// ReleaseTag devuelve el tag de la ultima release o "" si no tiene.
func (p Project) ReleaseTag() string {
	if p.LatestRelease == nil {
		return ""
	}
	return p.LatestRelease.TagName
}
