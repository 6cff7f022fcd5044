package outwriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wagonlab/railscan/internal/contract"
)

func TestNewOutWriter(t *testing.T) {
	ow := NewOutWriter()
	assert.NotNil(t, ow)
}

func TestGetMaxTableDescWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		detail   bool
		expected int
	}{
		{
			name:     "wide terminal caps at maximum",
			width:    200,
			detail:   false,
			expected: 60,
		},
		{
			name:     "narrow terminal floors at minimum",
			width:    50,
			detail:   false,
			expected: 15,
		},
		{
			name:     "detail columns shrink the description width",
			width:    120,
			detail:   true,
			expected: 25,
		},
		{
			name:     "standard terminal without detail",
			width:    120,
			detail:   false,
			expected: 60,
		},
		{
			name:     "default fallback width",
			width:    80,
			detail:   false,
			expected: 35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width, Detail: tt.detail}
			assert.Equal(t, tt.expected, getMaxTableDescWidth(cfg))
		})
	}
}
