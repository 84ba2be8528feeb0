package config

import "errors"

var (
	errUnknownChain = errors.New("unknown chain, expected evm, elrond or starknet")
	errEmptyAbi     = errors.New("empty contract interface description")
)
