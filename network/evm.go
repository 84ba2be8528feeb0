package network

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/DrDelphi/TenPercentBot/data"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

var errWrongSigner = errors.New("not authorized to sign for this account")

type receiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// evmBackend is satisfied by *ethclient.Client and by the simulated client
type evmBackend interface {
	bind.ContractBackend
	receiptReader
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// EvmContract - contract binding and confirmer for EVM compatible networks
type EvmContract struct {
	client   evmBackend
	closer   func()
	contract *bind.BoundContract
	abi      abi.ABI
	receipts receiptReader

	key          *ecdsa.PrivateKey
	from         common.Address
	chainID      *big.Int
	gasLimit     uint64
	pollInterval time.Duration
}

// NewEvmContract - dials the node and binds the configured contract to the configured account
func NewEvmContract(ctx context.Context, cfg data.AppConfig) (*EvmContract, error) {
	contractAbi, err := LoadEvmAbi(cfg.Abi)
	if err != nil {
		return nil, &data.ConfigurationError{Field: "abiPath", Err: err}
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.SigningKey, "0x"))
	if err != nil {
		return nil, &data.ConfigurationError{Field: "signingKey", Err: errors.New("invalid private key")}
	}

	from := crypto.PubkeyToAddress(key.PublicKey)
	if !common.IsHexAddress(cfg.AccountAddress) || common.HexToAddress(cfg.AccountAddress) != from {
		return nil, &data.ConfigurationError{Field: "accountAddress", Err: ErrAccountMismatch}
	}
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, &data.ConfigurationError{Field: "contractAddress", Err: fmt.Errorf("invalid address %s", cfg.ContractAddress)}
	}

	client, err := ethclient.DialContext(ctx, cfg.Network.Proxy)
	if err != nil {
		log.Error("can not connect to node", "proxy", cfg.Network.Proxy, "error", err)
		return nil, err
	}

	ec, err := newEvmContract(ctx, cfg, contractAbi, key, client)
	if err != nil {
		client.Close()
		return nil, err
	}
	ec.closer = client.Close

	return ec, nil
}

func newEvmContract(ctx context.Context, cfg data.AppConfig, contractAbi abi.ABI, key *ecdsa.PrivateKey, client evmBackend) (*EvmContract, error) {
	chainID := big.NewInt(cfg.Network.ChainID)
	if cfg.Network.ChainID == 0 {
		var err error
		chainID, err = client.ChainID(ctx)
		if err != nil {
			log.Error("can not get chain id", "error", err)
			return nil, err
		}
	}

	from := crypto.PubkeyToAddress(key.PublicKey)
	contract := bind.NewBoundContract(common.HexToAddress(cfg.ContractAddress), contractAbi, client, client, client)

	log.Info("evm contract bound", "contract", cfg.ContractAddress, "account", from.Hex(), "chainID", chainID)

	return &EvmContract{
		client:       client,
		contract:     contract,
		abi:          contractAbi,
		receipts:     client,
		key:          key,
		from:         from,
		chainID:      chainID,
		gasLimit:     cfg.GasLimit,
		pollInterval: cfg.PollInterval.Duration,
	}, nil
}

// LoadEvmAbi parses either a bare ABI array or a build artifact holding it under "abi"
func LoadEvmAbi(raw []byte) (abi.ABI, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		type artifact struct {
			ABI json.RawMessage `json:"abi"`
		}
		var a artifact
		if err := json.Unmarshal(raw, &a); err != nil {
			return abi.ABI{}, fmt.Errorf("failed to unmarshal artifact JSON: %w", err)
		}
		if len(a.ABI) == 0 {
			return abi.ABI{}, errors.New("artifact has no abi field")
		}
		raw = a.ABI
	}

	return abi.JSON(bytes.NewReader(raw))
}

// Invoke - packs, signs and sends a call to operation
func (ec *EvmContract) Invoke(ctx context.Context, operation string, args ...interface{}) (*data.TransactionSubmission, error) {
	method, ok := ec.abi.Methods[operation]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, operation)
	}
	if len(args) != len(method.Inputs) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArgumentMismatch, operation, len(method.Inputs), len(args))
	}
	if _, err := method.Inputs.Pack(args...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArgumentMismatch, err)
	}

	tx, err := ec.contract.Transact(ec.transactOpts(ctx), operation, args...)
	if err != nil {
		log.Error("unable to send transaction", "operation", operation, "error", err)
		return nil, err
	}

	log.Debug("transaction sent", "operation", operation, "hash", tx.Hash().Hex(), "nonce", tx.Nonce())

	return &data.TransactionSubmission{TransactionHash: tx.Hash().Hex()}, nil
}

// WaitForTransaction - polls for the receipt until it exists or ctx is done
func (ec *EvmContract) WaitForTransaction(ctx context.Context, hash string) (*data.ConfirmationReceipt, error) {
	txHash := common.HexToHash(hash)
	ticker := time.NewTicker(ec.pollInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		receipt, err := ec.receipts.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			return evmReceipt(hash, receipt), nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			lastErr = err
			log.Debug("receipt query failed", "hash", hash, "error", err)
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return nil, fmt.Errorf("%w (last error: %v)", ctx.Err(), lastErr)
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// GetBalance - the account's native balance in ether, for display
func (ec *EvmContract) GetBalance(ctx context.Context) (float64, error) {
	wei, err := ec.client.BalanceAt(ctx, ec.from, nil)
	if err != nil {
		log.Error("getBalance - BalanceAt", "address", ec.from.Hex(), "error", err)
		return 0, err
	}

	balance, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e18)).Float64()

	return balance, nil
}

func (ec *EvmContract) Close() {
	if ec.closer != nil {
		ec.closer()
	}
}

// transactOpts signs with the configured key; nonce and gas price come from the node
func (ec *EvmContract) transactOpts(ctx context.Context) *bind.TransactOpts {
	signer := types.LatestSignerForChainID(ec.chainID)

	return &bind.TransactOpts{
		From: ec.from,
		Signer: func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if addr != ec.from {
				return nil, errWrongSigner
			}
			return types.SignTx(tx, signer, ec.key)
		},
		Value:    big.NewInt(0),
		GasLimit: ec.gasLimit,
		Context:  ctx,
	}
}

func evmReceipt(hash string, receipt *types.Receipt) *data.ConfirmationReceipt {
	res := &data.ConfirmationReceipt{
		TransactionHash: hash,
		Status:          data.StatusReverted,
		GasUsed:         receipt.GasUsed,
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		res.Status = data.StatusConfirmed
	}
	if receipt.BlockNumber != nil {
		res.BlockNumber = receipt.BlockNumber.Uint64()
	}

	return res
}
