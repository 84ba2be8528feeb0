package network

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DrDelphi/TenPercentBot/data"
	"github.com/DrDelphi/TenPercentBot/utils"
	"github.com/ElrondNetwork/elrond-go-core/core"
	"github.com/ElrondNetwork/elrond-go-core/core/pubkeyConverter"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/blockchain"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/builders"
	erdgoCore "github.com/ElrondNetwork/elrond-sdk-erdgo/core"
	sdkData "github.com/ElrondNetwork/elrond-sdk-erdgo/data"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/interactors"
)

type elrondProxy interface {
	interactors.Proxy
	GetDefaultTransactionArguments(ctx context.Context, address erdgoCore.AddressHandler, networkConfigs *sdkData.NetworkConfig) (sdkData.ArgCreateTransaction, error)
}

// ElrondContract - contract binding and confirmer for the MultiversX (Elrond) network
type ElrondContract struct {
	NetworkConfig *sdkData.NetworkConfig
	cfg           data.AppConfig

	proxy      elrondProxy
	txBuilder  interactors.TxBuilder
	conv       core.PubkeyConverter
	endpoints  map[string][]string
	privateKey []byte
}

// NewElrondContract - creates a new ElrondContract object
func NewElrondContract(ctx context.Context, cfg data.AppConfig) (*ElrondContract, error) {
	endpoints, err := LoadElrondAbi(cfg.Abi)
	if err != nil {
		return nil, &data.ConfigurationError{Field: "abiPath", Err: err}
	}

	privateKey, err := elrondPrivateKey(cfg)
	if err != nil {
		return nil, &data.ConfigurationError{Field: "signingKey", Err: err}
	}

	address, err := utils.GetAddressFromPrivateKey(privateKey)
	if err != nil {
		return nil, &data.ConfigurationError{Field: "signingKey", Err: err}
	}
	if address != cfg.AccountAddress {
		return nil, &data.ConfigurationError{Field: "accountAddress", Err: ErrAccountMismatch}
	}

	conv, err := pubkeyConverter.NewBech32PubkeyConverter(32, log)
	if err != nil {
		log.Error("can not create converter", "error", err)
		return nil, err
	}
	if _, err = conv.Decode(cfg.ContractAddress); err != nil {
		return nil, &data.ConfigurationError{Field: "contractAddress", Err: err}
	}

	txBuilder, err := builders.NewTxBuilder(blockchain.NewTxSigner())
	if err != nil {
		log.Error("can not create transaction builder", "error", err)
		return nil, err
	}

	proxy := blockchain.NewElrondProxy(cfg.Network.Proxy, nil)

	networkConfig, err := proxy.GetNetworkConfig(ctx)
	if err != nil {
		log.Error("can not get network config from proxy", "error", err)
		return nil, err
	}

	log.Info("elrond contract bound", "contract", cfg.ContractAddress, "account", address, "chainID", networkConfig.ChainID)

	return &ElrondContract{
		NetworkConfig: networkConfig,
		cfg:           cfg,
		proxy:         proxy,
		txBuilder:     txBuilder,
		conv:          conv,
		endpoints:     endpoints,
		privateKey:    privateKey,
	}, nil
}

func elrondPrivateKey(cfg data.AppConfig) ([]byte, error) {
	if cfg.SigningKey != "" {
		return utils.DecodePrivateKey(cfg.SigningKey)
	}

	return utils.GetPrivateKeyFromSeed(cfg.Seedphrase, 0), nil
}

// Invoke - signs and sends operation@args to the contract, returning the transaction hash
func (ec *ElrondContract) Invoke(ctx context.Context, operation string, args ...interface{}) (*data.TransactionSubmission, error) {
	function, err := callData(ec.endpoints, operation, args)
	if err != nil {
		return nil, err
	}

	w := interactors.NewWallet()
	ti, err := interactors.NewTransactionInteractor(ec.proxy, ec.txBuilder)
	if err != nil {
		log.Error("error creating transaction interactor", "error", err)
		return nil, err
	}

	senderAddress, err := w.GetAddressFromPrivateKey(ec.privateKey)
	if err != nil {
		log.Error("unable to load the address from the private key", "error", err)
		return nil, err
	}

	txArgs, err := ec.proxy.GetDefaultTransactionArguments(ctx, senderAddress, ec.NetworkConfig)
	if err != nil {
		log.Error("unable to prepare the transaction creation arguments", "error", err)
		return nil, err
	}

	txArgs.GasLimit = ec.cfg.GasLimit
	txArgs.RcvAddr = ec.cfg.ContractAddress
	txArgs.Data = []byte(function)
	txArgs.Value = "0"

	tx, err := ti.ApplySignatureAndGenerateTx(ec.privateKey, txArgs)
	if err != nil {
		log.Error("unable to sign transaction", "error", err)
		return nil, err
	}

	hash, err := ti.SendTransaction(ctx, tx)
	if err != nil {
		log.Error("unable to send transaction", "operation", operation, "error", err)
		return nil, err
	}

	log.Debug("transaction sent", "operation", operation, "hash", hash, "nonce", txArgs.Nonce)

	return &data.TransactionSubmission{TransactionHash: hash}, nil
}

// WaitForTransaction - polls the indexer until the transaction leaves the pending state
func (ec *ElrondContract) WaitForTransaction(ctx context.Context, hash string) (*data.ConfirmationReceipt, error) {
	ticker := time.NewTicker(ec.cfg.PollInterval.Duration)
	defer ticker.Stop()

	var lastErr error
	for {
		info, err := ec.GetTransactionInfo(ctx, hash)
		if err != nil {
			lastErr = err
			log.Trace("transaction not indexed yet", "hash", hash, "error", err)
		} else if info.Source.Status != elrondStatusPending && info.Source.Status != "" {
			receipt := &data.ConfirmationReceipt{
				TransactionHash: hash,
				Status:          data.StatusReverted,
				GasUsed:         info.Source.GasUsed,
			}
			if info.Source.Status == elrondStatusSuccess {
				receipt.Status = data.StatusConfirmed
			}
			return receipt, nil
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

func (ec *ElrondContract) GetTransactionInfo(ctx context.Context, hash string) (*data.ElasticEntry, error) {
	endpoint := fmt.Sprintf("%s/transactions/_search?size=1&q=_id:%s", ec.cfg.Network.Indexer, hash)
	bytes, err := utils.GetHTTP(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	res := &data.ElasticResult{}
	err = json.Unmarshal(bytes, res)
	if err != nil {
		return nil, err
	}

	if len(res.Hits.Hits) == 0 {
		return nil, errEmptyResponse
	}
	if len(res.Hits.Hits) != 1 {
		return nil, ErrInvalidResponse
	}

	return res.Hits.Hits[0], nil
}

// GetBalance - the account's eGLD balance, for display
func (ec *ElrondContract) GetBalance(ctx context.Context) (float64, error) {
	pubkey, err := ec.conv.Decode(ec.cfg.AccountAddress)
	if err != nil {
		return 0, err
	}

	account, err := ec.proxy.GetAccount(ctx, sdkData.NewAddressFromBytes(pubkey))
	if err != nil {
		log.Error("getBalance - GetAccount", "address", ec.cfg.AccountAddress, "error", err)
		return 0, err
	}

	return account.GetBalance(ec.NetworkConfig.Denomination)
}

func (ec *ElrondContract) Close() {}
