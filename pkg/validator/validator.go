// Package validator turns struct-tag validation into a typed Result keyed by
// JSON field name.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"storefront/pkg/currency"
	apperrors "storefront/pkg/errors"
)

var reSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Result struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func (r *Result) add(field, message string) {
	if r.Errors == nil {
		r.Errors = make(map[string][]string)
	}
	r.Errors[field] = append(r.Errors[field], message)
	r.Valid = false
}

// FieldErrors flattens the result into wire details, ordered by field name.
func (r Result) FieldErrors() []apperrors.FieldError {
	fields := make([]string, 0, len(r.Errors))
	for field := range r.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out []apperrors.FieldError
	for _, field := range fields {
		for _, msg := range r.Errors[field] {
			out = append(out, apperrors.FieldError{Field: field, Message: msg})
		}
	}
	return out
}

// Err returns nil for a valid result and a validation AppError otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return apperrors.Validation("Validation failed", r.FieldErrors())
}

type Validator struct {
	validate *validator.Validate
	codec    *currency.Codec
}

type Option func(*Validator)

// WithCurrency sets the codec the "price" rule accepts. The default is the
// home-country codec.
func WithCurrency(codec *currency.Codec) Option {
	return func(v *Validator) {
		v.codec = codec
	}
}

func New(opts ...Option) *Validator {
	out := &Validator{codec: currency.Default()}
	for _, opt := range opts {
		opt(out)
	}

	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return reSlug.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		_, _, ok := out.codec.Canonicalize(fl.Field().String())
		return ok
	})

	out.validate = v
	return out
}

func (v *Validator) Validate(s any) Result {
	res := Result{Valid: true}

	err := v.validate.Struct(s)
	if err == nil {
		return res
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		res.add("input", err.Error())
		return res
	}

	for _, fe := range validationErrs {
		res.add(fieldPath(fe), v.message(fe))
	}
	return res
}

// fieldPath drops the top-level struct name from the namespace, so
// "Product.images[0]" becomes "images[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func (v *Validator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return boundMessage("at least", fe)
	case "max":
		return boundMessage("at most", fe)
	case "url":
		return "must be a valid URL"
	case "mongodb":
		return "must be a valid id"
	case "slug":
		return "must contain only lowercase letters, digits and single hyphens"
	case "price":
		return "must be a price like " + v.codec.Format(1299)
	}
	return "is invalid"
}

func boundMessage(bound string, fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.String:
		return fmt.Sprintf("must be %s %s characters", bound, fe.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("must contain %s %s items", bound, fe.Param())
	}
	return fmt.Sprintf("must be %s %s", bound, fe.Param())
}
