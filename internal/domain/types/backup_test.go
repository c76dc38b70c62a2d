package types_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"bakkey/internal/domain/types"
)

const (
	hotKey  = "age15sr33c4jrdm367u7hmdekkz4xlmehalcqcflzrpr9ndp9mv6tyhs92qgw6"
	coldKey = "age1y6cj8x6934lckm3ljzyg3c3z9kldvv2af6sk7u0szew3r7a03c3szzwk33"
)

func TestBakArrayUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want types.BakArray
	}{
		{"single string", `"` + hotKey + `"`, types.BakArray{{Key: hotKey}}},
		{"array", `[{"id":"hot","key":"` + hotKey + `"},{"key":"` + coldKey + `"}]`,
			types.BakArray{{ID: "hot", Key: hotKey}, {Key: coldKey}}},
		{"empty array", `[]`, types.BakArray{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got types.BakArray
			require.NoError(t, json.Unmarshal([]byte(tc.in), &got))
			assert.Equal(t, tc.want, got)
		})
	}

	var bad types.BakArray
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestBakArrayInsideObject(t *testing.T) {
	var cfg struct {
		Bak types.BakArray `json:"bak"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"bak":"`+coldKey+`"}`), &cfg))
	assert.Equal(t, []types.AgeRecipient{coldKey}, cfg.Bak.Keys())
}

func TestBackupConfigTOML(t *testing.T) {
	cfg := types.BackupConfig{}
	cfg.Backup.Bak = types.BakArray{{ID: "hot", Key: hotKey}, {ID: "cold", Key: coldKey}}

	var buf bytes.Buffer
	require.NoError(t, toml.NewEncoder(&buf).Encode(cfg))

	expected := `[backup]
[[backup.bak]]
id = 'hot'
key = '` + hotKey + `'

[[backup.bak]]
id = 'cold'
key = '` + coldKey + `'
`
	assert.Equal(t, expected, buf.String())

	var decoded types.BackupConfig
	require.NoError(t, toml.Unmarshal([]byte(expected), &decoded))
	assert.Equal(t, cfg, decoded)
}

func TestBackupConfigYAML(t *testing.T) {
	cfg := types.BackupConfig{}
	cfg.Backup.Bak = types.NewBakArrayFromStrings(hotKey)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	var decoded types.BackupConfig
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, cfg, decoded)
	assert.Contains(t, string(out), "key: "+hotKey)
}

func TestRecipientShortIDAndState(t *testing.T) {
	r := types.AgeRecipient(hotKey)
	assert.Equal(t, hotKey[:32], r.ShortID())
	assert.Equal(t, "age1", types.AgeRecipient("age1").ShortID())

	assert.True(t, types.KeyStateSaved.Valid())
	assert.False(t, types.KeyState("lost").Valid())

	rec := types.KeyRecord{ID: "hot", Key: hotKey}
	assert.Equal(t, types.Bak{ID: "hot", Key: hotKey}, rec.Bak())
}
