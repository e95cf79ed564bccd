package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "mangaart/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire name so callers can attach messages to inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the normalized candidate against the inquiry schema. On
// success it returns an Inquiry ready to be stored (without ID or CreatedAt);
// otherwise an AppError holding one FieldError per rejected field.
func (c Candidate) Validate() (*Inquiry, error) {
	n := c.Normalize()

	if err := validate.Struct(n); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "validator misconfigured", err)
		}
		fields := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{
				Field:  fe.Field(),
				Reason: reasonFor(fe),
			})
		}
		return nil, apperrors.Invalid(fields)
	}

	return &Inquiry{
		Name:    n.Name,
		Email:   n.Email,
		Phone:   n.Phone,
		Country: n.Country,
		Message: n.Message,
	}, nil
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
