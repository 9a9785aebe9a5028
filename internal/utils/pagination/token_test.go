package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := Cursor{
		JournalDate: time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC),
		JournalID:   "7b0e4c1a-0000-4000-8000-000000000001",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, cursor, decoded)
}

func TestEncodeDecodeToken_ZeroTimes(t *testing.T) {
	decoded, err := DecodeToken(EncodeToken(Cursor{JournalID: "j"}))

	require.NoError(t, err)
	assert.True(t, decoded.JournalDate.IsZero())
	assert.True(t, decoded.CreatedAt.IsZero())
}

func TestDecodeTokenError(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		message string
	}{
		{name: "not base64", token: "this is not base64!", message: "base64 decode"},
		{name: "missing separator", token: encode("2023-05-15T00:00:00Z"), message: "split"},
		{name: "missing journal id", token: encode("2023-05-15T00:00:00Z|2023-05-15T00:00:00Z|"), message: "split"},
		{name: "bad journal date", token: encode("notadate|2023-05-15T00:00:00Z|j"), message: "journal date parse"},
		{name: "bad created at", token: encode("2023-05-15T00:00:00Z|later|j"), message: "created_at parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeToken(tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func encode(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}
