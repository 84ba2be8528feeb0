package network

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/DrDelphi/TenPercentBot/data"
	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/account"
	"github.com/NethermindEth/starknet.go/rpc"
	snutils "github.com/NethermindEth/starknet.go/utils"
)

// starknetAccount is the part of *account.Account used to submit and confirm calls
type starknetAccount interface {
	BuildAndSendInvokeTxn(ctx context.Context, functionCalls []rpc.InvokeFunctionCall, opts *account.TxnOptions) (rpc.AddInvokeTransactionResponse, error)
	WaitForTransactionReceipt(ctx context.Context, transactionHash *felt.Felt, pollInterval time.Duration) (*rpc.TransactionReceiptWithBlockInfo, error)
}

type starknetCaller interface {
	Call(ctx context.Context, call rpc.FunctionCall, blockID rpc.BlockID) ([]*felt.Felt, error)
}

// StarknetContract - contract binding and confirmer for Starknet (katana, sepolia, mainnet)
type StarknetContract struct {
	account   starknetAccount
	caller    starknetCaller
	functions map[string][]string

	address      *felt.Felt
	contract     *felt.Felt
	feeToken     *felt.Felt
	pollInterval time.Duration
}

// NewStarknetContract - connects to the RPC node and binds the configured contract to the configured account
func NewStarknetContract(ctx context.Context, cfg data.AppConfig) (*StarknetContract, error) {
	functions, err := LoadCairoAbi(cfg.Abi)
	if err != nil {
		return nil, &data.ConfigurationError{Field: "abiPath", Err: err}
	}

	privateKey, ok := new(big.Int).SetString(cfg.SigningKey, 0)
	if !ok || privateKey.Sign() <= 0 {
		return nil, &data.ConfigurationError{Field: "signingKey", Err: errors.New("invalid private key")}
	}

	address, err := new(felt.Felt).SetString(cfg.AccountAddress)
	if err != nil {
		return nil, &data.ConfigurationError{Field: "accountAddress", Err: err}
	}
	contract, err := new(felt.Felt).SetString(cfg.ContractAddress)
	if err != nil {
		return nil, &data.ConfigurationError{Field: "contractAddress", Err: err}
	}
	feeToken, err := new(felt.Felt).SetString(cfg.Network.FeeToken)
	if err != nil {
		return nil, &data.ConfigurationError{Field: "network.feeToken", Err: err}
	}

	provider, err := rpc.NewProvider(ctx, cfg.Network.Proxy)
	if err != nil {
		log.Error("can not connect to rpc node", "proxy", cfg.Network.Proxy, "error", err)
		return nil, err
	}

	// the keystore entry is looked up by this label when signing
	label := address.String()
	ks := account.NewMemKeystore()
	ks.Put(label, privateKey)

	acc, err := account.NewAccount(provider, address, label, ks, account.CairoV2)
	if err != nil {
		log.Error("can not create starknet account", "account", cfg.AccountAddress, "error", err)
		return nil, err
	}

	log.Info("starknet contract bound", "contract", contract.String(), "account", address.String())

	return &StarknetContract{
		account:      acc,
		caller:       provider,
		functions:    functions,
		address:      address,
		contract:     contract,
		feeToken:     feeToken,
		pollInterval: cfg.PollInterval.Duration,
	}, nil
}

// Invoke - serializes the arguments, signs and sends a single call to operation
func (sc *StarknetContract) Invoke(ctx context.Context, operation string, args ...interface{}) (*data.TransactionSubmission, error) {
	calldata, err := cairoCallData(sc.functions, operation, args)
	if err != nil {
		return nil, err
	}

	call := rpc.InvokeFunctionCall{
		ContractAddress: sc.contract,
		FunctionName:    operation,
		CallData:        calldata,
	}

	resp, err := sc.account.BuildAndSendInvokeTxn(ctx, []rpc.InvokeFunctionCall{call}, nil)
	if err != nil {
		log.Error("unable to send transaction", "operation", operation, "error", err)
		return nil, err
	}
	if resp.Hash == nil {
		return nil, fmt.Errorf("%w: no transaction hash", ErrInvalidResponse)
	}

	log.Debug("transaction sent", "operation", operation, "hash", resp.Hash.String())

	return &data.TransactionSubmission{TransactionHash: resp.Hash.String()}, nil
}

// WaitForTransaction - polls for the receipt until it exists or ctx is done
func (sc *StarknetContract) WaitForTransaction(ctx context.Context, hash string) (*data.ConfirmationReceipt, error) {
	txHash, err := new(felt.Felt).SetString(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction hash %s: %v", ErrInvalidResponse, hash, err)
	}

	receipt, err := sc.account.WaitForTransactionReceipt(ctx, txHash, sc.pollInterval)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		}
		return nil, err
	}
	if receipt == nil {
		return nil, fmt.Errorf("%w: no receipt", ErrInvalidResponse)
	}

	res := &data.ConfirmationReceipt{
		TransactionHash: hash,
		BlockNumber:     uint64(receipt.BlockNumber),
	}
	switch receipt.ExecutionStatus {
	case rpc.TxnExecutionStatusSUCCEEDED:
		res.Status = data.StatusConfirmed
	case rpc.TxnExecutionStatusREVERTED:
		res.Status = data.StatusReverted
		log.Debug("transaction reverted", "hash", hash, "reason", receipt.RevertReason)
	default:
		return nil, fmt.Errorf("%w: execution status %q", ErrInvalidResponse, receipt.ExecutionStatus)
	}

	return res, nil
}

// GetBalance - the account's fee token balance, for display
func (sc *StarknetContract) GetBalance(ctx context.Context) (float64, error) {
	call := rpc.FunctionCall{
		ContractAddress:    sc.feeToken,
		EntryPointSelector: snutils.GetSelectorFromNameFelt("balance_of"),
		Calldata:           []*felt.Felt{sc.address},
	}

	result, err := sc.caller.Call(ctx, call, rpc.WithBlockTag("latest"))
	if err != nil {
		log.Error("getBalance - Call", "address", sc.address.String(), "error", err)
		return 0, err
	}

	return feltsToTokens(result)
}

func (sc *StarknetContract) Close() {}

// feltsToTokens reads a u256 (low, high) amount with 18 decimals
func feltsToTokens(result []*felt.Felt) (float64, error) {
	if len(result) != 2 {
		return 0, fmt.Errorf("%w: balance has %d words", ErrInvalidResponse, len(result))
	}

	low := result[0].BigInt(new(big.Int))
	high := result[1].BigInt(new(big.Int))
	amount := new(big.Int).Add(new(big.Int).Lsh(high, 128), low)

	balance, _ := new(big.Float).Quo(new(big.Float).SetInt(amount), big.NewFloat(1e18)).Float64()

	return balance, nil
}
