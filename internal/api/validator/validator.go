package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Behyna/paygate/internal/metrics"
	"github.com/go-playground/validator/v10"
)

const (
	sep = " and "
)

var ErrMalformedParams = errors.New("malformed params")

type Error struct {
	Error       bool
	FailedField string
	Tag         string
	Value       interface{}
}

// ValidationError lists every failed field of one params object.
type ValidationError struct {
	Fields []Error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", f.FailedField, f.Tag))
	}
	return strings.Join(msgs, sep)
}

// Field is the wire name of the first failed field, used as error data.
func (e *ValidationError) Field() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0].FailedField
}

type IXValidator interface {
	Bind(params json.RawMessage, dst any) error
	Validate(data interface{}) []Error
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewXValidator(v *validator.Validate, metrics *metrics.Metrics) IXValidator {
	v.RegisterTagNameFunc(jsonName)
	for key, function := range valid {
		_ = v.RegisterValidation(key, function)
	}

	return &XValidator{
		validator: v,
		metrics:   metrics,
	}
}

// Bind decodes RPC params into dst and validates it.
func (x XValidator) Bind(params json.RawMessage, dst any) error {
	if len(params) == 0 || string(params) == "null" {
		params = json.RawMessage("{}")
	}

	if err := json.Unmarshal(params, dst); err != nil {
		if x.metrics != nil {
			x.metrics.RecordValidationError("params", "decode")
		}
		return fmt.Errorf("%w: %v", ErrMalformedParams, err)
	}

	if errs := x.Validate(dst); len(errs) > 0 && errs[0].Error {
		if x.metrics != nil {
			for _, err := range errs {
				x.metrics.RecordValidationError(err.FailedField, err.Tag)
			}
		}
		return &ValidationError{Fields: errs}
	}

	return nil
}

func (x XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(errs, &fieldErrs) {
			return []Error{{Error: true, FailedField: "params", Tag: "invalid"}}
		}

		for _, err := range fieldErrs {
			var elem Error
			elem.FailedField = err.Field()
			elem.Tag = err.Tag()
			elem.Value = err.Value()
			elem.Error = true
			validationErrors = append(validationErrors, elem)
		}
	}
	return validationErrors
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
