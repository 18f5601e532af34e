package auth

import (
	"unicode"

	"imobiliare/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterRequest struct {
	Name     string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"omitempty,min=6,max=20"`
	Password string `validate:"required,min=12,max=72"`
}

func ValidateRegister(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}

	if !isPasswordComplex(req.Password) {
		return errors.ErrInvalidPassword
	}
	return nil
}

// isPasswordComplex requires at least one character from each of the
// four classes: upper, lower, digit, punctuation or symbol.
func isPasswordComplex(s string) bool {
	var upper, lower, digit, special bool
	for _, r := range s {
		upper = upper || unicode.IsUpper(r)
		lower = lower || unicode.IsLower(r)
		digit = digit || unicode.IsNumber(r)
		special = special || unicode.IsPunct(r) || unicode.IsSymbol(r)
	}
	return upper && lower && digit && special
}
