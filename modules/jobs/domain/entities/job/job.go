package job

import (
	"strings"

	"github.com/ati-intranet/portal/pkg/types"
)

type Opening struct {
	ID                 types.ID `json:"id"`
	Title              string   `json:"title"`
	Department         string   `json:"department"`
	Location           string   `json:"location"`
	EmploymentType     string   `json:"employment_type"`
	ExperienceRequired string   `json:"experience_required"`
	Description        string   `json:"description"`
	Requirements       string   `json:"requirements"`
	PostedDate         string   `json:"posted_date"`
	Status             string   `json:"status"`
}

// StatusClass is the lower-cased status, used for styling badges.
func (o Opening) StatusClass() string {
	return strings.ToLower(strings.TrimSpace(o.Status))
}

// Referral is the JSON body of POST /jobs/refer.
type Referral struct {
	JobOpeningID   types.ID `json:"job_opening_id"`
	CandidateName  string   `json:"candidate_name"`
	CandidateEmail string   `json:"candidate_email"`
	CandidatePhone string   `json:"candidate_phone"`
	ResumeLink     string   `json:"resume_link"`
	Comments       string   `json:"comments"`
}

// ReferredEvent is published once the API accepted a referral.
type ReferredEvent struct {
	Actor    string
	Referral Referral
}
