// Package export turns filtered record sets into CSV. Column sets are a
// fixed contract per entity kind; row order is the caller's (the order the
// drilldown engine established), never re-sorted here.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/talentpipe/ops-api/internal/model"
)

const dateLayout = "2006-01-02"

var candidateHeader = []string{
	"Name", "Email", "Phone", "Position", "Status", "Recruiter",
	"Experience", "Current CTC", "Expected CTC", "Notice Period", "Created Date",
}

var requirementHeader = []string{
	"Job Code", "Client", "Position", "Location", "Primary Recruiter",
	"Secondary Recruiter", "TAT", "Status", "Requirements",
}

var clientHeader = []string{
	"Company Name", "Contact Person", "Email", "Phone", "Industry",
	"Website", "Address", "Date Added",
}

// Filename renders the download name convention, <kind>-<ISO date>.csv.
func Filename(kind model.EntityKind, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", kind, now.Format(dateLayout))
}

// Candidates writes the candidate column contract. Zero records still
// produce the header row.
func Candidates(w io.Writer, records []model.Candidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(candidateHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, c := range records {
		row := []string{
			c.Name, c.Email, c.Phone, c.Position, string(c.Status),
			c.RecruiterName, c.Experience, c.CurrentCTC, c.ExpectedCTC,
			c.NoticePeriod, formatDate(c.CreatedAt),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func Requirements(w io.Writer, records []model.Requirement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(requirementHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.JobCode, r.ClientName, r.Position, r.Location,
			r.PrimaryRecruiter, r.SecondaryRecruiter,
			formatDate(r.TATDeadline), r.Status, r.Description,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func Clients(w io.Writer, records []model.Client) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(clientHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, c := range records {
		row := []string{
			c.CompanyName, c.ContactPerson, c.Email, c.Phone,
			c.Industry, c.Website, c.Address, formatDate(c.DateAdded),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
