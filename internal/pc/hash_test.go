package pc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashValidate(t *testing.T) {
	tests := []struct {
		name    string
		hash    Hash
		wantErr bool
	}{
		{"empty", 0, false},
		{"perfect clear", MaxHash, false},
		{"selection board", 535296000, false},
		{"one line plus two minos", 1<<Width - 1 + 3<<Width, false},
		{"three minos", 7, true},
		{"too large", MaxHash + 1, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.hash.Validate()
			if test.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHash)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseHash(t *testing.T) {
	h, err := ParseHash("1099511627775")
	require.NoError(t, err)
	assert.Equal(t, MaxHash, h)

	_, err = ParseHash("-1")
	assert.ErrorIs(t, err, ErrInvalidHash)

	_, err = ParseHash("14")
	assert.ErrorIs(t, err, ErrInvalidHash)
}
