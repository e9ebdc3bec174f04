package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"todoapi/shared/failure"
	"todoapi/shared/validator"

	"github.com/stretchr/testify/assert"
)

type item struct {
	Name       string `json:"name"       validate:"max=5"`
	IsComplete bool   `json:"isComplete"`
}

type required struct {
	Title string `json:"title" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        item
		expectError string
	}{
		{
			name: "valid struct",
			data: item{Name: "abc"},
		},
		{
			name:        "name too long uses json field name",
			data:        item{Name: "abcdef"},
			expectError: "name must be at most 5 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.expectError)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("todo", "required"))
	assert.EqualError(t, validator.ValidateVar("", "required"), " is required")
	assert.NoError(t, validator.ValidateVar("", "empty"))
	assert.Error(t, validator.ValidateVar("x", "empty"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"title":"buy milk"}`,
		},
		{
			name:        "missing required",
			jsonBody:    `{}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"title":}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data required
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateList(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectLen   int
		expectError bool
	}{
		{
			name:      "valid array",
			jsonBody:  `[{"name":"a","isComplete":true},{"name":"b"}]`,
			expectLen: 2,
		},
		{
			name:      "empty array",
			jsonBody:  `[]`,
			expectLen: 0,
		},
		{
			name:        "null body",
			jsonBody:    `null`,
			expectError: true,
		},
		{
			name:        "object instead of array",
			jsonBody:    `{"name":"a"}`,
			expectError: true,
		},
		{
			name:        "invalid element",
			jsonBody:    `[{"name":"a"},{"name":"toolong"}]`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data []item
			err := validator.ValidateList(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Len(t, data, tt.expectLen)
		})
	}
}
