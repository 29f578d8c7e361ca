package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	StatusApplied        ApplicationStatus = "Applied"
	StatusBatchProcessed ApplicationStatus = "Batch Processed"
	StatusAbandoned      ApplicationStatus = "Abandoned"
)

// CandidateProfile is the structured profile the AI extracts from a resume.
// ApplicationCount and IsPremium survive re-uploads; everything else is
// overwritten on each extraction.
type CandidateProfile struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Skills           []string `json:"skills"`
	YearsOfExp       int      `json:"years_of_experience"`
	JobRole          string   `json:"job_role"`
	TechStack        []string `json:"tech_stack"`
	Education        []string `json:"education"`
	Certifications   []string `json:"certifications"`
	Summary          string   `json:"summary"`
	ApplicationCount int      `json:"application_count"`
	IsPremium        bool     `json:"is_premium"`
}

// ApplicationRecord is one immutable history entry. Individual portal
// submissions get one each; a LinkedIn batch gets a single batch record.
type ApplicationRecord struct {
	ID      string            `json:"id"`
	Company string            `json:"company"`
	Role    string            `json:"role"`
	Status  ApplicationStatus `json:"status"`
	Date    string            `json:"date"`
}

func NewApplicationRecord(company, role string, status ApplicationStatus) ApplicationRecord {
	return ApplicationRecord{
		ID:      uuid.NewString(),
		Company: company,
		Role:    role,
		Status:  status,
		Date:    time.Now().Format("2006-01-02 15:04:05"),
	}
}
