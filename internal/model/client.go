package model

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	CompanyName   string     `json:"company_name" db:"company_name"`
	ContactPerson string     `json:"contact_person" db:"contact_person"`
	Email         string     `json:"email" db:"email"`
	Phone         string     `json:"phone" db:"phone"`
	Industry      string     `json:"industry" db:"industry"`
	Website       string     `json:"website" db:"website"`
	Address       string     `json:"address" db:"address"`
	DateAdded     *time.Time `json:"date_added,omitempty" db:"date_added"`
}
