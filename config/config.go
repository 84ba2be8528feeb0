package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/DrDelphi/TenPercentBot/data"
	"github.com/DrDelphi/TenPercentBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
)

var log = logger.GetOrCreate("config")

// NewConfig - reads the application configuration from the provided path,
// fills in defaults and secrets from the environment, loads the contract ABI
// and validates the result. Any missing setting is a *data.ConfigurationError.
func NewConfig(configPath string) (*data.AppConfig, error) {
	bytes, err := os.ReadFile(configPath)
	if err != nil {
		return nil, &data.ConfigurationError{Field: "path", Err: err}
	}

	cfg := &data.AppConfig{}
	err = json.Unmarshal(bytes, cfg)
	if err != nil {
		return nil, &data.ConfigurationError{Field: "path", Err: err}
	}

	applyDefaults(cfg)

	if cfg.AbiPath != "" {
		abiPath := cfg.AbiPath
		if !filepath.IsAbs(abiPath) {
			abiPath = filepath.Join(filepath.Dir(configPath), abiPath)
		}
		cfg.Abi, err = os.ReadFile(abiPath)
		if err != nil {
			return nil, &data.ConfigurationError{Field: "abiPath", Err: err}
		}
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	log.Debug("configuration loaded", "config", cfg.String())

	return cfg, nil
}

func applyDefaults(cfg *data.AppConfig) {
	if cfg.Chain == "" {
		cfg.Chain = data.ChainEVM
	}
	if cfg.SigningKey == "" {
		cfg.SigningKey = os.Getenv(utils.EnvSigningKey)
	}
	if cfg.Seedphrase == "" {
		cfg.Seedphrase = os.Getenv(utils.EnvSeedphrase)
	}
	if cfg.GasLimit == 0 && cfg.Chain == data.ChainElrond {
		cfg.GasLimit = utils.ElrondCallGasLimit
	}
	if cfg.Network.FeeToken == "" && cfg.Chain == data.ChainStarknet {
		cfg.Network.FeeToken = utils.StarknetFeeToken
	}
	if cfg.ConfirmationTimeout.Duration <= 0 {
		cfg.ConfirmationTimeout.Duration = utils.DefaultConfirmationTimeout
	}
	if cfg.PollInterval.Duration <= 0 {
		cfg.PollInterval.Duration = utils.DefaultPollInterval
	}
}

// Validate - checks that every setting an action needs is present
func Validate(cfg *data.AppConfig) error {
	switch cfg.Chain {
	case data.ChainEVM, data.ChainElrond, data.ChainStarknet:
	default:
		return &data.ConfigurationError{Field: "chain", Err: errUnknownChain}
	}

	required := []struct {
		field string
		value string
	}{
		{"network.proxy", cfg.Network.Proxy},
		{"accountAddress", cfg.AccountAddress},
		{"contractAddress", cfg.ContractAddress},
		{"abiPath", cfg.AbiPath},
	}
	for _, r := range required {
		if r.value == "" {
			return &data.ConfigurationError{Field: r.field, Err: data.ErrMissingField}
		}
	}

	if len(cfg.Abi) == 0 {
		return &data.ConfigurationError{Field: "abiPath", Err: errEmptyAbi}
	}

	switch cfg.Chain {
	case data.ChainEVM, data.ChainStarknet:
		if cfg.SigningKey == "" {
			return &data.ConfigurationError{Field: "signingKey", Err: data.ErrMissingField}
		}
	case data.ChainElrond:
		if cfg.SigningKey == "" && cfg.Seedphrase == "" {
			return &data.ConfigurationError{Field: "signingKey", Err: data.ErrMissingField}
		}
		if cfg.Network.Indexer == "" {
			return &data.ConfigurationError{Field: "network.indexer", Err: data.ErrMissingField}
		}
	}

	return nil
}
