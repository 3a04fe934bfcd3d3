package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Record is one persisted deployment.
type Record struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	UserID     string    `json:"user_id"`
	Platform   string    `json:"platform"`
	URL        string    `json:"url"`
	Status     string    `json:"status"`
	DeployedAt time.Time `json:"deployed_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Insert(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.DeployedAt.IsZero() {
		rec.DeployedAt = time.Now().UTC()
	}
	if rec.Status == "" {
		rec.Status = "deployed"
	}

	const q = `
insert into deployments (id, project_id, user_id, platform, url, status, deployed_at)
values ($1::uuid, $2, $3, $4, $5, $6, $7);
`
	if _, err := r.db.Exec(ctx, q, rec.ID, rec.ProjectID, rec.UserID, rec.Platform, rec.URL, rec.Status, rec.DeployedAt); err != nil {
		return fmt.Errorf("insert deployment: %w", err)
	}
	return nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	const q = `
select id, project_id, user_id, platform, url, status, deployed_at
from deployments
where user_id = $1
order by deployed_at desc
limit 100;
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list deployments: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0, 16)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &rec.UserID, &rec.Platform, &rec.URL, &rec.Status, &rec.DeployedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
