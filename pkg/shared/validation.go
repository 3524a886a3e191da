package shared

import (
	"context"
	"reflect"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"

	"github.com/ati-intranet/portal/pkg/constants"
	"github.com/ati-intranet/portal/pkg/intl"
	"github.com/ati-intranet/portal/pkg/serrors"
)

// ValidateStruct runs the struct tags of dto and returns localized messages
// keyed by field name. Field labels are looked up as labelPrefix + "." + field,
// or labelPrefix + "." + the field's `label` tag when it carries one.
func ValidateStruct(ctx context.Context, dto any, labelPrefix string) map[string]string {
	err := constants.Validate.Struct(dto)
	if err == nil {
		return map[string]string{}
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}
	l, _ := intl.UseLocalizer(ctx)
	return serrors.LocalizeValidationErrors(
		serrors.ProcessValidatorErrors(verrs, func(field string) string {
			return labelPrefix + "." + labelKey(dto, field)
		}),
		l,
	)
}

// labelKey lets a field whose name is a reserved message key (Description,
// ID) point its label at another key.
func labelKey(dto any, field string) string {
	t := reflect.TypeOf(dto)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return field
	}
	if sf, ok := t.FieldByName(field); ok {
		if label := sf.Tag.Get("label"); label != "" {
			return label
		}
	}
	return field
}
