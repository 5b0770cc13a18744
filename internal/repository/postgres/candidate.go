package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/internal/repository"
)

type candidateRepository struct {
	db *sqlx.DB
}

func NewCandidateRepository(db *sqlx.DB) repository.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) List(ctx context.Context) ([]model.Candidate, error) {
	query := `
		SELECT id, name, email, phone, position, status, recruiter_id,
		       recruiter_name, experience, current_ctc, expected_ctc,
		       notice_period, created_at
		FROM candidates
		ORDER BY created_at DESC NULLS LAST
	`
	candidates := []model.Candidate{}
	if err := r.db.SelectContext(ctx, &candidates, query); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) Create(ctx context.Context, c *model.Candidate) (*model.Candidate, error) {
	query := `
		INSERT INTO candidates (
			id, name, email, phone, position, status, recruiter_id,
			recruiter_name, experience, current_ctc, expected_ctc,
			notice_period, created_at
		) VALUES (
			:id, :name, :email, :phone, :position, :status, :recruiter_id,
			:recruiter_name, :experience, :current_ctc, :expected_ctc,
			:notice_period, :created_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return c, nil
}

func (r *candidateRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.CandidateStatus) (*model.Candidate, error) {
	query := `
		UPDATE candidates SET status = $1 WHERE id = $2
		RETURNING id, name, email, phone, position, status, recruiter_id,
		          recruiter_name, experience, current_ctc, expected_ctc,
		          notice_period, created_at
	`
	var c model.Candidate
	if err := r.db.GetContext(ctx, &c, query, status, id); err != nil {
		return nil, fmt.Errorf("failed to update candidate status: %w", err)
	}
	return &c, nil
}
