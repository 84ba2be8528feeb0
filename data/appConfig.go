package data

import (
	"encoding/json"
	"fmt"
	"time"
)

// Supported chains
const (
	ChainEVM      = "evm"
	ChainElrond   = "elrond"
	ChainStarknet = "starknet"
)

// AppConfig holds the application configuration read from config.json
type AppConfig struct {
	Chain   string `json:"chain"`
	Network struct {
		Proxy               string `json:"proxy"`
		Indexer             string `json:"indexer"`
		ExplorerTransaction string `json:"explorerTransaction"`
		ChainID             int64  `json:"chainID"`
		FeeToken            string `json:"feeToken"`
	} `json:"network"`
	AccountAddress  string `json:"accountAddress"`
	SigningKey      string `json:"signingKey"`
	Seedphrase      string `json:"seed"`
	ContractAddress string `json:"contractAddress"`
	AbiPath         string `json:"abiPath"`
	Abi             []byte `json:"-"`

	GasLimit            uint64   `json:"gasLimit"`
	ConfirmationTimeout Duration `json:"confirmationTimeout"`
	PollInterval        Duration `json:"pollInterval"`

	Bot struct {
		Token string `json:"token"`
		Owner int64  `json:"owner"`
	} `json:"bot"`
}

// String - never prints the signing credential nor the bot token
func (cfg AppConfig) String() string {
	return fmt.Sprintf("chain=%s proxy=%s account=%s contract=%s abi=%s timeout=%v",
		cfg.Chain, cfg.Network.Proxy, cfg.AccountAddress, cfg.ContractAddress, cfg.AbiPath, cfg.ConfirmationTimeout.Duration)
}

// MarshalJSON - same document as config.json without the signing key, the seed and the bot token
func (cfg AppConfig) MarshalJSON() ([]byte, error) {
	type plain AppConfig
	out := struct {
		plain
		SigningKey string `json:"signingKey,omitempty"`
		Seedphrase string `json:"seed,omitempty"`
		Bot        struct {
			Owner int64 `json:"owner"`
		} `json:"bot"`
	}{plain: plain(cfg)}
	out.Bot.Owner = cfg.Bot.Owner

	return json.Marshal(out)
}

// Duration wraps time.Duration so it can be written as "90s" in config.json
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid duration %s", s)
	}

	parsed, err := time.ParseDuration(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	d.Duration = parsed

	return nil
}
