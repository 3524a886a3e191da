package dtos

import (
	"context"
	"strings"

	"github.com/ati-intranet/portal/modules/jobs/domain/entities/job"
	"github.com/ati-intranet/portal/pkg/shared"
	"github.com/ati-intranet/portal/pkg/types"
)

type ReferralDTO struct {
	JobOpeningID   types.ID `validate:"required,ne=0"`
	CandidateName  string   `validate:"required"`
	CandidateEmail string   `validate:"required,email"`
	CandidatePhone string
	ResumeLink     string `validate:"omitempty,url"`
	Comments       string
}

func (d *ReferralDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.JobOpeningID = types.ID(strings.TrimSpace(string(d.JobOpeningID)))
	d.CandidateName = strings.TrimSpace(d.CandidateName)
	d.CandidateEmail = strings.TrimSpace(d.CandidateEmail)
	d.ResumeLink = strings.TrimSpace(d.ResumeLink)
	errorMessages := shared.ValidateStruct(ctx, d, "Jobs.Fields")
	return errorMessages, len(errorMessages) == 0
}

func (d *ReferralDTO) ToEntity() *job.Referral {
	return &job.Referral{
		JobOpeningID:   d.JobOpeningID,
		CandidateName:  d.CandidateName,
		CandidateEmail: d.CandidateEmail,
		CandidatePhone: strings.TrimSpace(d.CandidatePhone),
		ResumeLink:     d.ResumeLink,
		Comments:       strings.TrimSpace(d.Comments),
	}
}
