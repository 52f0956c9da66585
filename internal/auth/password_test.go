package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eagd-org/donation-server/internal/domain"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r!Secret")
	require.NoError(t, err)
	require.NotEqual(t, "Sup3r!Secret", hash)

	assert.True(t, CheckPassword(hash, "Sup3r!Secret"))
	assert.False(t, CheckPassword(hash, "sup3r!secret"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestValidatePasswordComplexity(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantRule string
	}{
		{name: "ok", password: "Abcdef1!", wantRule: ""},
		{name: "ok with symbols", password: `Very$Long"Passw0rd`, wantRule: ""},
		{name: "too short", password: "Ab1!", wantRule: "min_length"},
		{name: "no upper", password: "abcdef1!", wantRule: "upper_required"},
		{name: "no lower", password: "ABCDEF1!", wantRule: "lower_required"},
		{name: "no digit", password: "Abcdefg!", wantRule: "digit_required"},
		{name: "no special", password: "Abcdefg1", wantRule: "special_required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordComplexity(tt.password)
			if tt.wantRule == "" {
				assert.NoError(t, err)
				return
			}
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "password", ve.Field)
			assert.Equal(t, tt.wantRule, ve.Rule)
		})
	}
}
