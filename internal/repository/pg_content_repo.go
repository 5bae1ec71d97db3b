package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-chat/internal/domain"
)

// PgContentRepository lee el contenido desde las tablas projects y experience.
// Solo hace SELECTs; el contenido se administra fuera de este servicio.
type PgContentRepository struct {
	pool *pgxpool.Pool
}

func NewPgContentRepository(pool *pgxpool.Pool) *PgContentRepository {
	return &PgContentRepository{pool: pool}
}

func (r *PgContentRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	const query = `
		SELECT name, description, topics, release_tag, stargazer_count, updated_at
		FROM projects
		ORDER BY position ASC, name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var row projectRow
		err = rows.Scan(
			&row.name,
			&row.description,
			&row.topics,
			&row.releaseTag,
			&row.stargazerCount,
			&row.updatedAt,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, row.toProject())
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

// projectRow refleja las columnas de projects; description y release_tag admiten NULL.
type projectRow struct {
	name           string
	description    *string
	topics         []string
	releaseTag     *string
	stargazerCount int
	updatedAt      time.Time
}

func (row projectRow) toProject() domain.Project {
	p := domain.Project{
		Name:           row.name,
		StargazerCount: row.stargazerCount,
		UpdatedAt:      row.updatedAt.UTC(),
	}
	if row.description != nil {
		p.Description = *row.description
	}
	for _, t := range row.topics {
		p.RepositoryTopics = append(p.RepositoryTopics, domain.Topic{Name: t})
	}
	if row.releaseTag != nil && *row.releaseTag != "" {
		p.LatestRelease = &domain.Release{TagName: *row.releaseTag}
	}
	return p
}

func (r *PgContentRepository) ListExperience(ctx context.Context) ([]domain.Experience, error) {
	const query = `
		SELECT year, title, company, description
		FROM experience
		ORDER BY position ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Experience
	for rows.Next() {
		var e domain.Experience
		if err = rows.Scan(&e.Year, &e.Title, &e.Company, &e.Description); err != nil {
			return nil, err
		}
		items = append(items, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
