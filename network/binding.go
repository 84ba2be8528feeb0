package network

import (
	"context"
	"fmt"

	"github.com/DrDelphi/TenPercentBot/data"
	logger "github.com/ElrondNetwork/elrond-go-logger"
)

var log = logger.GetOrCreate("network")

// ContractBinding submits calls to the configured contract on behalf of the configured account
type ContractBinding interface {
	Invoke(ctx context.Context, operation string, args ...interface{}) (*data.TransactionSubmission, error)
}

// Confirmer polls the network until a submission reaches a terminal status
type Confirmer interface {
	WaitForTransaction(ctx context.Context, hash string) (*data.ConfirmationReceipt, error)
}

// Contract is a binding that can also confirm its own submissions
type Contract interface {
	ContractBinding
	Confirmer
	GetBalance(ctx context.Context) (float64, error)
	Close()
}

// NewContract - creates the binding for the chain named in the configuration
func NewContract(ctx context.Context, cfg data.AppConfig) (Contract, error) {
	switch cfg.Chain {
	case data.ChainEVM:
		contract, err := NewEvmContract(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return contract, nil
	case data.ChainElrond:
		contract, err := NewElrondContract(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return contract, nil
	case data.ChainStarknet:
		contract, err := NewStarknetContract(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return contract, nil
	default:
		return nil, &data.ConfigurationError{Field: "chain", Err: fmt.Errorf("unsupported chain %q", cfg.Chain)}
	}
}
