package shared

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title    string `json:"title"`
		Duration int    `json:"duration"`
	}

	tests := []struct {
		name        string
		body        string
		wantErr     bool
		errContains string
	}{
		{
			name: "valid body",
			body: `{"title": "The Matrix", "duration": 136}`,
		},
		{
			name:        "trailing comma",
			body:        `{"title": "The Matrix",}`,
			wantErr:     true,
			errContains: "invalid character",
		},
		{
			name:        "empty body",
			body:        "",
			wantErr:     true,
			errContains: "EOF",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/movies", strings.NewReader(tc.body))

			var got payload
			err := DecodeJSON(req, &got)

			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "The Matrix", got.Title)
			assert.Equal(t, 136, got.Duration)
		})
	}
}

// failingBody errors on every read, like a client that dropped mid-request.
type failingBody struct{}

func (failingBody) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestDecodeJSONReadError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/movies", failingBody{})

	var got struct{}
	err := DecodeJSON(req, &got)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected EOF")
}

// selfValidating exercises the custom-Validate branch of ValidateRequest.
type selfValidating struct {
	Name string
}

func (s *selfValidating) Validate() error {
	if s.Name == "" {
		return errors.New("name must not be empty")
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	type tagged struct {
		Title    string `validate:"required"`
		Duration int    `validate:"gt=0"`
	}

	tests := []struct {
		name    string
		req     interface{}
		wantErr bool
	}{
		{
			name: "custom validator passes",
			req:  &selfValidating{Name: "Avatar"},
		},
		{
			name:    "custom validator fails",
			req:     &selfValidating{},
			wantErr: true,
		},
		{
			name: "struct tags pass",
			req:  tagged{Title: "Avatar", Duration: 162},
		},
		{
			name:    "struct tags fail",
			req:     tagged{Duration: -1},
			wantErr: true,
		},
		{
			name: "no tags, no validator",
			req:  struct{ Anything string }{"ok"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.req)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
