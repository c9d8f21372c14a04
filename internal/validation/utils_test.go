package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/topicsvc/internal/errs"
)

type queryPayload struct {
	Name *string `validate:"omitnil,notblank"`

	malformed   []string
	bindErr     error
	validateErr error
}

func (p *queryPayload) BindQuery(values url.Values, malformed []string) error {
	if v, ok := values["name"]; ok {
		p.Name = &v[0]
	}
	p.malformed = malformed
	return p.bindErr
}

func (p *queryPayload) Validate() error {
	if p.validateErr != nil {
		return p.validateErr
	}
	return Struct(p)
}

func newContext(target string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestStruct_NotBlank(t *testing.T) {
	blank := "  "
	filled := "x"

	assert.NoError(t, Struct(&queryPayload{}))
	assert.NoError(t, Struct(&queryPayload{Name: &filled}))
	assert.Error(t, Struct(&queryPayload{Name: &blank}))
}

func TestStruct_NotBlankWhitespaceSet(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "byte order mark", value: "\uFEFF"},
		{name: "no-break space", value: "\u00A0"},
		{name: "ideographic space", value: "\u3000"},
		{name: "line separator", value: "\u2028 \t"},
		{name: "next line is content", value: "\u0085", valid: true},
		{name: "zero width space is content", value: "\u200B", valid: true},
		{name: "padded text", value: "\uFEFF go ", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&queryPayload{Name: &tt.value})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantValues    url.Values
		wantMalformed []string
	}{
		{
			name:       "well formed",
			raw:        "search=go&sort=name",
			wantValues: url.Values{"search": {"go"}, "sort": {"name"}},
		},
		{
			name:          "semicolon in value",
			raw:           "search=a;b&sort=name",
			wantValues:    url.Values{"sort": {"name"}},
			wantMalformed: []string{"search"},
		},
		{
			name:          "bare semicolon",
			raw:           "search=;",
			wantValues:    url.Values{},
			wantMalformed: []string{"search"},
		},
		{
			name:          "bad escape in value",
			raw:           "search=%zz",
			wantValues:    url.Values{},
			wantMalformed: []string{"search"},
		},
		{
			name:          "truncated escape",
			raw:           "sort=name&search=%",
			wantValues:    url.Values{"sort": {"name"}},
			wantMalformed: []string{"search"},
		},
		{
			name:          "escaped key",
			raw:           "sea%72ch=%zz",
			wantValues:    url.Values{},
			wantMalformed: []string{"search"},
		},
		{
			name:          "bad escape in key",
			raw:           "se%zz=x&search=go",
			wantValues:    url.Values{"search": {"go"}},
			wantMalformed: []string{"se%zz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, malformed := ParseQuery(tt.raw)
			assert.Equal(t, tt.wantValues, values)
			assert.Equal(t, tt.wantMalformed, malformed)
		})
	}
}

func TestBindAndValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := &queryPayload{}
		require.NoError(t, BindAndValidate(newContext("/?name=go"), p))
		require.NotNil(t, p.Name)
		assert.Equal(t, "go", *p.Name)
	})

	t.Run("malformed pairs reach the payload", func(t *testing.T) {
		p := &queryPayload{}
		require.NoError(t, BindAndValidate(newContext("/?name=go&search=%zz"), p))
		assert.Equal(t, []string{"search"}, p.malformed)
		assert.Equal(t, "go", *p.Name)
	})

	t.Run("tag failure becomes generic bad request", func(t *testing.T) {
		err := BindAndValidate(newContext("/?name=%20"), &queryPayload{})

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	})

	t.Run("http error passes through", func(t *testing.T) {
		sentinel := errs.NewNotFoundError("gone", nil)
		err := BindAndValidate(newContext("/"), &queryPayload{validateErr: sentinel})
		assert.Same(t, sentinel, err)
	})

	t.Run("bind failure", func(t *testing.T) {
		err := BindAndValidate(newContext("/"), &queryPayload{bindErr: errors.New("bad query")})

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, "Validation failed: bad query", httpErr.Message)
	})
}
