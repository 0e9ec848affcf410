package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"broker": {"address": "tcp://broker.test:20001", "username": "demo", "password": "demo"},
		"session": {"tradeDate": 20260901, "carryOvernight": false, "queueCapacity": 256},
		"universe": ["600030.SH", "000001.SZ"],
		"blotter": {"enabled": true, "host": "db.test", "database": "blotter"}
	}`)

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(20260901), loaded.TradeDate)
	assert.False(t, loaded.CarryOvernight)
	assert.Equal(t, 256, loaded.QueueCapacity)
	assert.Equal(t, "tcp://broker.test:20001", loaded.Broker.Address)
	assert.True(t, loaded.Blotter.Enabled)
	assert.Equal(t, 2, loaded.Universe.Count())
	assert.True(t, loaded.Universe.Contains("600030.SH"))
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{"session": {"tradeDate": 20260901}}`)

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.True(t, loaded.CarryOvernight, "carry should default to true")
	assert.Zero(t, loaded.QueueCapacity)
	assert.Equal(t, 0, loaded.Universe.Count())
}

func TestLoadRejectsBadInput(t *testing.T) {
	testCases := []struct {
		desc    string
		content string
	}{
		{"missing trade date", `{"session": {}}`},
		{"negative trade date", `{"session": {"tradeDate": -1}}`},
		{"empty universe symbol", `{"session": {"tradeDate": 20260901}, "universe": [""]}`},
		{"duplicate universe symbol", `{"session": {"tradeDate": 20260901}, "universe": ["600030.SH", "600030.SH"]}`},
		{"malformed json", `{`},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestUniverse(t *testing.T) {
	u := NewUniverse()
	require.NoError(t, u.Add("600030.SH"))
	require.NoError(t, u.Add("000001.SZ"))

	assert.Error(t, u.Add("600030.SH"))
	assert.Error(t, u.Add(""))
	assert.True(t, u.Contains("000001.SZ"))
	assert.False(t, u.Contains("600519.SH"))
	assert.Equal(t, []string{"600030.SH", "000001.SZ"}, u.Symbols())

	// Mutating the returned slice must not touch the registry.
	symbols := u.Symbols()
	symbols[0] = "xxx"
	assert.True(t, u.Contains("600030.SH"))
	assert.Equal(t, "600030.SH", u.Symbols()[0])
}
