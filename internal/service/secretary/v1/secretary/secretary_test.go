package secretary

import (
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretary(t *testing.T) {
	s := NewSecretaryService()

	t.Run("should generate distinct tokens", func(t *testing.T) {
		seen := make(map[string]struct{})
		for i := 0; i < 1000; i++ {
			for _, token := range []string{s.NewAPIKey(), s.NewWalletAddress(), s.NewUserID().String(), s.NewTransactionID().String()} {
				_, ok := seen[token]
				require.False(t, ok)
				seen[token] = struct{}{}
			}
		}
	})

	t.Run("should generate 64 hex digit api key", func(t *testing.T) {
		apiKey := s.NewAPIKey()
		assert.Len(t, apiKey, 64)
		_, err := hex.DecodeString(apiKey)
		assert.NoError(t, err)
	})

	t.Run("should generate parseable address", func(t *testing.T) {
		_, err := uuid.Parse(s.NewWalletAddress())
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, s.NewUserID())
	})
}
