package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/internal/repository"
)

type clientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) List(ctx context.Context) ([]model.Client, error) {
	query := `
		SELECT id, company_name, contact_person, email, phone,
		       industry, website, address, date_added
		FROM clients
		ORDER BY date_added DESC NULLS LAST
	`
	clients := []model.Client{}
	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (r *clientRepository) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	query := `
		INSERT INTO clients (
			id, company_name, contact_person, email, phone,
			industry, website, address, date_added
		) VALUES (
			:id, :company_name, :contact_person, :email, :phone,
			:industry, :website, :address, :date_added
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}
