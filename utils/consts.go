package utils

import "time"

const (
	DefaultConfigPath = "config.json"
	DefaultLogLevel   = "*:INFO"

	DefaultConfirmationTimeout = 2 * time.Minute
	DefaultPollInterval        = 5 * time.Second

	// elrond contract calls need an explicit gas limit; evm estimates when 0
	ElrondCallGasLimit = 10000000

	// STRK token, also the fee token of a default katana devnet
	StarknetFeeToken = "0x04718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d"

	EnvSigningKey = "TENPERCENT_SIGNING_KEY"
	EnvSeedphrase = "TENPERCENT_SEED"
)
