package data

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSecretConfig() AppConfig {
	cfg := AppConfig{
		Chain:           ChainEVM,
		AccountAddress:  "0xabc",
		SigningKey:      "0xdeadbeefcafe",
		Seedphrase:      "moral volcano peasant pass circle pen over picture flat shop clap goat",
		ContractAddress: "0xdef",
		AbiPath:         "abi/tenpercent.json",
	}
	cfg.Network.Proxy = "http://localhost:8545"
	cfg.Bot.Token = "123456:telegram-secret"
	cfg.Bot.Owner = 42
	cfg.ConfirmationTimeout.Duration = 2 * time.Minute

	return cfg
}

func TestAppConfig_MarshalJSONOmitsSecrets(t *testing.T) {
	cfg := newSecretConfig()

	bytes, err := json.Marshal(cfg)
	require.NoError(t, err)

	out := string(bytes)
	assert.NotContains(t, out, cfg.SigningKey)
	assert.NotContains(t, out, cfg.Seedphrase)
	assert.NotContains(t, out, cfg.Bot.Token)
	assert.NotContains(t, out, "signingKey")
	assert.NotContains(t, out, "token")

	decoded := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(bytes, &decoded))
	assert.Equal(t, "evm", decoded["chain"])
	assert.Equal(t, "0xabc", decoded["accountAddress"])
	assert.Equal(t, "2m0s", decoded["confirmationTimeout"])
	assert.Equal(t, float64(42), decoded["bot"].(map[string]interface{})["owner"])
	assert.Equal(t, "http://localhost:8545", decoded["network"].(map[string]interface{})["proxy"])

	ptrBytes, err := json.Marshal(&cfg)
	require.NoError(t, err)
	assert.Equal(t, out, string(ptrBytes))
}

func TestAppConfig_StringOmitsSecrets(t *testing.T) {
	cfg := newSecretConfig()

	out := cfg.String()
	assert.Contains(t, out, "0xabc")
	assert.NotContains(t, out, cfg.SigningKey)
	assert.NotContains(t, out, cfg.Bot.Token)
}
