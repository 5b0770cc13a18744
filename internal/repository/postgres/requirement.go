package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/internal/repository"
)

type requirementRepository struct {
	db *sqlx.DB
}

func NewRequirementRepository(db *sqlx.DB) repository.RequirementRepository {
	return &requirementRepository{db: db}
}

func (r *requirementRepository) List(ctx context.Context) ([]model.Requirement, error) {
	query := `
		SELECT id, job_code, client_name, position, location,
		       primary_recruiter, secondary_recruiter, tat_deadline,
		       status, description, created_at
		FROM requirements
		ORDER BY created_at DESC NULLS LAST
	`
	requirements := []model.Requirement{}
	if err := r.db.SelectContext(ctx, &requirements, query); err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}
	return requirements, nil
}

func (r *requirementRepository) Create(ctx context.Context, req *model.Requirement) (*model.Requirement, error) {
	query := `
		INSERT INTO requirements (
			id, job_code, client_name, position, location,
			primary_recruiter, secondary_recruiter, tat_deadline,
			status, description, created_at
		) VALUES (
			:id, :job_code, :client_name, :position, :location,
			:primary_recruiter, :secondary_recruiter, :tat_deadline,
			:status, :description, :created_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return nil, fmt.Errorf("failed to create requirement: %w", err)
	}
	return req, nil
}
