package dtos

import (
	"context"

	"github.com/ati-intranet/portal/modules/core/services"
	"github.com/ati-intranet/portal/pkg/shared"
)

type LoginDTO struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	Next     string
}

func (d *LoginDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errorMessages := shared.ValidateStruct(ctx, d, "Login")
	return errorMessages, len(errorMessages) == 0
}

type SignupDTO struct {
	Username  string `validate:"required"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
}

func (d *SignupDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errorMessages := shared.ValidateStruct(ctx, d, "Signup")
	return errorMessages, len(errorMessages) == 0
}

func (d *SignupDTO) ToEntity() services.SignupDTO {
	return services.SignupDTO{
		Username:  d.Username,
		Email:     d.Email,
		Password:  d.Password,
		FirstName: d.FirstName,
		LastName:  d.LastName,
	}
}
