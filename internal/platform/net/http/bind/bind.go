// Package bind decodes and validates JSON request bodies
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"

	perr "minutes/internal/platform/errors"
	"minutes/internal/platform/logger"
)

// MaxBody caps a request body; minutes text is validated separately per field
const MaxBody = 4 << 20

type checker struct {
	v  *validator.Validate
	tr ut.Translator
}

var get = sync.OnceValue(func() checker {
	loc := en.New()
	tr, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = entrans.RegisterDefaultTranslations(v, tr)
	short(v, tr, "min", "{0} must be at least {1}")
	short(v, tr, "max", "{0} must be at most {1}")
	return checker{v: v, tr: tr}
})

// jsonName reports fields by their json key
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func short(v *validator.Validate, tr ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, tr,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// ParseJSON decodes exactly one JSON object into T and validates it
// unknown fields, trailing data and empty bodies are JSON errors
// failed rules are Validation errors naming the field
func ParseJSON[T any](r *http.Request) (T, error) {
	var dst T
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return dst, perr.JSONErrf("empty body")
		}
		return dst, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return dst, perr.JSONErrf("unexpected trailing data")
	}
	return dst, Validate(dst)
}

// Validate runs struct rules on v
func Validate(v any) error {
	c := get()
	err := c.v.Struct(v)
	var fields validator.ValidationErrors
	switch {
	case err == nil:
		return nil
	case errors.As(err, &fields) && len(fields) > 0:
		fe := fields[0]
		return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(c.tr)), fe.Field())
	default:
		logger.Get().Error().Err(err).Msg("bind: validator misuse")
		return perr.JSONErrf("validation error")
	}
}
