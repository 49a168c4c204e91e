package server_test

import (
	"testing"

	"audience-sync/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Public(t *testing.T) {
	tests := []struct {
		name  string
		paths string
		want  []string
	}{
		{"Default", "/swagger", []string{"/swagger"}},
		{"Several", "/swagger, /health ,", []string{"/swagger", "/health"}},
		{"Empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{PublicPaths: tt.paths}
			assert.Equal(t, tt.want, c.Public())
		})
	}
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Address())
}
