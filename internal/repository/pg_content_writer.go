package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-chat/internal/domain"
)

// PgContentWriter reemplaza el contenido publicado. Lo usa solo cmd/content_sync;
// el servidor nunca escribe.
type PgContentWriter struct {
	pool *pgxpool.Pool
}

func NewPgContentWriter(pool *pgxpool.Pool) *PgContentWriter {
	return &PgContentWriter{pool: pool}
}

// ReplaceContent borra y vuelve a cargar ambas tablas en una sola transaccion,
// guardando el orden del dataset en la columna position.
func (w *PgContentWriter) ReplaceContent(ctx context.Context, projects []domain.Project, experience []domain.Experience) error {
	return pgx.BeginFunc(ctx, w.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM projects`); err != nil {
			return fmt.Errorf("clear projects: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM experience`); err != nil {
			return fmt.Errorf("clear experience: %w", err)
		}

		batch := &pgx.Batch{}
		for i, p := range projects {
			batch.Queue(`
				INSERT INTO projects (name, description, topics, release_tag, stargazer_count, updated_at, position)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, projectArgs(p, i)...)
		}
		for i, e := range experience {
			batch.Queue(`
				INSERT INTO experience (year, title, company, description, position)
				VALUES ($1, $2, $3, $4, $5)
			`, e.Year, e.Title, e.Company, e.Description, i)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert content: %w", err)
		}
		return nil
	})
}

func projectArgs(p domain.Project, position int) []any {
	var releaseTag *string
	if tag := p.ReleaseTag(); tag != "" {
		releaseTag = &tag
	}
	var description *string
	if p.Description != "" {
		d := p.Description
		description = &d
	}
	return []any{
		p.Name,
		description,
		p.TopicNames(),
		releaseTag,
		p.StargazerCount,
		p.UpdatedAt,
		position,
	}
}
