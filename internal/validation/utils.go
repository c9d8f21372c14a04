package validation

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/topicsvc/internal/errs"
)

// validate is shared by all requests, validator.Validate is safe for
// concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// notblank: strings must contain something other than whitespace.
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}

	return v
}

// notBlank rejects strings made only of whitespace, using the whitespace set
// of ECMAScript String.prototype.trim: unicode.IsSpace plus U+FEFF, minus
// U+0085. Non-string kinds fall back to validators.NotBlank.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return validators.NotBlank(fl)
	}
	return strings.TrimFunc(field.String(), IsTrimSpace) != ""
}

// IsTrimSpace reports whether r is stripped by ECMAScript trim.
func IsTrimSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// Validatable is implemented by request payload types that know how to validate themselves.
type Validatable interface {
	Validate() error
}

// QueryBinder is implemented by request types read from the query string.
//
// Binding is done by the type itself so it can tell an absent key from an
// empty value. malformed lists the keys of pairs that could not be decoded
// and are missing from values.
type QueryBinder interface {
	BindQuery(values url.Values, malformed []string) error
}

// Request is what the typed handler pipeline accepts.
type Request interface {
	Validatable
	QueryBinder
}

// BindAndValidate binds query parameters into payload and validates it.
//
// Errors are always *errs.HTTPError with a 4xx status: an HTTPError returned
// by the payload is passed through, anything else becomes a generic 400.
func BindAndValidate(c echo.Context, payload Request) error {
	values, malformed := ParseQuery(c.Request().URL.RawQuery)

	if err := payload.BindQuery(values, malformed); err != nil {
		return toClientError(err)
	}

	if err := payload.Validate(); err != nil {
		return toClientError(err)
	}

	return nil
}

// ParseQuery decodes raw like url.ParseQuery and also returns the keys of the
// pairs url.ParseQuery drops: pairs holding a ';' and pairs with an invalid
// escape. A key that cannot be unescaped is returned as written.
func ParseQuery(raw string) (url.Values, []string) {
	values, err := url.ParseQuery(raw)
	if err == nil {
		return values, nil
	}

	var malformed []string
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, keyErr := url.QueryUnescape(rawKey)
		_, valueErr := url.QueryUnescape(rawValue)

		if keyErr != nil {
			malformed = append(malformed, rawKey)
			continue
		}
		if strings.Contains(pair, ";") || valueErr != nil {
			malformed = append(malformed, key)
		}
	}

	return values, malformed
}

func toClientError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return errs.ValidationError(err)
}
