package timezone_test

import (
	"testing"
	"time"

	"todoapi/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestNow(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty falls back to UTC", input: "", expected: "UTC"},
		{name: "unknown falls back to UTC", input: "Mars/Olympus_Mons", expected: "UTC"},
		{name: "UTC", input: "UTC", expected: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timezone.Load(tt.input).String())
		})
	}
}
