package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/talentpipe/ops-api/internal/model"
)

// The engine consumes full-collection reads: each List call returns the
// complete current collection, which the snapshot store treats as a new
// authoritative snapshot. Writes return the stored record.

type CandidateRepository interface {
	List(ctx context.Context) ([]model.Candidate, error)
	Create(ctx context.Context, c *model.Candidate) (*model.Candidate, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.CandidateStatus) (*model.Candidate, error)
}

type RequirementRepository interface {
	List(ctx context.Context) ([]model.Requirement, error)
	Create(ctx context.Context, r *model.Requirement) (*model.Requirement, error)
}

type ClientRepository interface {
	List(ctx context.Context) ([]model.Client, error)
	Create(ctx context.Context, c *model.Client) (*model.Client, error)
}

type InterviewRepository interface {
	List(ctx context.Context) ([]model.Interview, error)
	Create(ctx context.Context, iv *model.Interview) (*model.Interview, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
