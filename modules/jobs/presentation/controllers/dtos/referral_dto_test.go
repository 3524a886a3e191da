package dtos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferralDTO_Ok(t *testing.T) {
	tests := []struct {
		name   string
		dto    ReferralDTO
		fields []string
	}{
		{name: "valid", dto: ReferralDTO{JobOpeningID: "1", CandidateName: "Grace", CandidateEmail: "grace@ati.test"}},
		{name: "blank name", dto: ReferralDTO{JobOpeningID: "1", CandidateName: "  ", CandidateEmail: "grace@ati.test"}, fields: []string{"CandidateName"}},
		{name: "bad email and link", dto: ReferralDTO{JobOpeningID: "1", CandidateName: "G", CandidateEmail: "nope", ResumeLink: "cv.pdf"}, fields: []string{"CandidateEmail", "ResumeLink"}},
		{name: "no opening", dto: ReferralDTO{CandidateName: "G", CandidateEmail: "g@ati.test"}, fields: []string{"JobOpeningID"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, ok := tt.dto.Ok(context.Background())
			assert.Equal(t, len(tt.fields) == 0, ok)
			for _, f := range tt.fields {
				assert.Contains(t, errs, f)
			}
			assert.Len(t, errs, len(tt.fields))
		})
	}
}

func TestReferralDTO_ToEntity(t *testing.T) {
	d := &ReferralDTO{JobOpeningID: "2", CandidateName: "Grace", CandidateEmail: "g@ati.test", CandidatePhone: " 555 ", Comments: " strong fit "}
	r := d.ToEntity()
	assert.EqualValues(t, "2", r.JobOpeningID)
	assert.Equal(t, "555", r.CandidatePhone)
	assert.Equal(t, "strong fit", r.Comments)
}
