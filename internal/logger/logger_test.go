package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogTo(t *testing.T) {
	var buf bytes.Buffer
	log := InitLogTo(&buf)
	log.Info().Str("address", "address_1").Msg("wallet opening done")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "info", record["level"])
	assert.Equal(t, "address_1", record["address"])
	assert.Equal(t, "wallet opening done", record["message"])
	assert.Contains(t, record, "time")
}
