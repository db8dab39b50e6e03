package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	accountRefRegex = `^[A-Za-z0-9_-]{1,64}$`
)

const (
	AccountRefTag = "account_ref"
)

var accountRefPattern = regexp.MustCompile(accountRefRegex)

var valid = map[string]func(fl validator.FieldLevel) bool{
	AccountRefTag: ValidateAccountRef,
}

// ValidateAccountRef rejects references that would break the checkout payload's key=value;... grammar.
func ValidateAccountRef(fl validator.FieldLevel) bool {
	return accountRefPattern.MatchString(fl.Field().String())
}
