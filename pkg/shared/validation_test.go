package shared

import (
	"context"
	"testing"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/ati-intranet/portal/pkg/intl"
)

type noteDTO struct {
	Title       string `validate:"required"`
	Description string `validate:"required" label:"DescriptionLabel"`
}

func TestValidateStruct_LabelTag(t *testing.T) {
	bundle := i18n.NewBundle(language.English)
	require.NoError(t, bundle.AddMessages(language.English,
		&i18n.Message{ID: "ValidationErrors.required", Other: "{{.Field}} is required"},
		&i18n.Message{ID: "Notes.Fields.Title", Other: "Heading"},
		&i18n.Message{ID: "Notes.Fields.DescriptionLabel", Other: "Details"},
	))
	ctx := intl.WithLocalizer(context.Background(), i18n.NewLocalizer(bundle, "en"))

	errs := ValidateStruct(ctx, &noteDTO{}, "Notes.Fields")
	require.Len(t, errs, 2)
	assert.Equal(t, "Heading is required", errs["Title"])
	assert.Equal(t, "Details is required", errs["Description"])
}

func TestLabelKey(t *testing.T) {
	assert.Equal(t, "DescriptionLabel", labelKey(&noteDTO{}, "Description"))
	assert.Equal(t, "Title", labelKey(noteDTO{}, "Title"))
	assert.Equal(t, "Missing", labelKey(&noteDTO{}, "Missing"))
	assert.Equal(t, "Title", labelKey(nil, "Title"))
}
