package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/internal/repository"
)

type interviewRepository struct {
	db *sqlx.DB
}

func NewInterviewRepository(db *sqlx.DB) repository.InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) List(ctx context.Context) ([]model.Interview, error) {
	query := `
		SELECT id, candidate_id, candidate_name, recruiter_id,
		       recruiter_name, start_time, round, mode, created_at
		FROM interviews
		ORDER BY start_time ASC
	`
	interviews := []model.Interview{}
	if err := r.db.SelectContext(ctx, &interviews, query); err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}

func (r *interviewRepository) Create(ctx context.Context, iv *model.Interview) (*model.Interview, error) {
	query := `
		INSERT INTO interviews (
			id, candidate_id, candidate_name, recruiter_id,
			recruiter_name, start_time, round, mode, created_at
		) VALUES (
			:id, :candidate_id, :candidate_name, :recruiter_id,
			:recruiter_name, :start_time, :round, :mode, :created_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, iv); err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}
	return iv, nil
}

func (r *interviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM interviews WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete interview: %w", err)
	}
	return nil
}
