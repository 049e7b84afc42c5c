package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required,min=2,max=10"`
	Email string `json:"email" validate:"required,email"`
	Kind  string `json:"kind" validate:"required,oneof=CASH ONLINE"`
}

func TestStruct(t *testing.T) {
	err := Struct(&sample{Name: "Alice", Email: "alice@example.com", Kind: "CASH"})
	require.NoError(t, err)
}

func TestStructReportsFriendlyMessages(t *testing.T) {
	tests := []struct {
		name    string
		input   sample
		wantMsg string
	}{
		{
			name:    "missing field",
			input:   sample{Email: "alice@example.com", Kind: "CASH"},
			wantMsg: "name is required",
		},
		{
			name:    "bad email",
			input:   sample{Name: "Alice", Email: "not-an-email", Kind: "CASH"},
			wantMsg: "email must be a valid email address",
		},
		{
			name:    "too short",
			input:   sample{Name: "A", Email: "alice@example.com", Kind: "CASH"},
			wantMsg: "name must be at least 2",
		},
		{
			name:    "not in allowed set",
			input:   sample{Name: "Alice", Email: "alice@example.com", Kind: "WIRE"},
			wantMsg: "kind must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
