package actions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DrDelphi/TenPercentBot/data"
	"github.com/DrDelphi/TenPercentBot/network"
	logger "github.com/ElrondNetwork/elrond-go-logger"
)

var log = logger.GetOrCreate("actions")

var errInvalidTimeout = errors.New("confirmation timeout must be positive")

// Runner submits one contract call, waits for its confirmation and folds
// both into an ActionResult. Submissions are serialized so that two calls
// from the same account never race for a nonce; confirmation waits are not.
type Runner struct {
	binding   network.ContractBinding
	confirmer network.Confirmer
	timeout   time.Duration

	submitMut sync.Mutex
}

// NewRunner - creates a new Runner; timeout bounds every confirmation wait
func NewRunner(binding network.ContractBinding, confirmer network.Confirmer, timeout time.Duration) (*Runner, error) {
	if timeout <= 0 {
		return nil, fmt.Errorf("%w, got %v", errInvalidTimeout, timeout)
	}

	return &Runner{
		binding:   binding,
		confirmer: confirmer,
		timeout:   timeout,
	}, nil
}

// Run never fails: every error ends up in the returned result
func (r *Runner) Run(ctx context.Context, spec data.ActionSpec) *data.ActionResult {
	submission, err := r.submit(ctx, spec)
	if err != nil {
		log.Warn("action not submitted", "action", spec.Name, "operation", spec.Operation, "error", err)
		return data.NewFailure(spec.Name, nil, &data.SubmissionError{Operation: spec.Operation, Err: err})
	}

	log.Info("transaction submitted", "action", spec.Name, "operation", spec.Operation, "hash", submission.TransactionHash)

	waitCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	receipt, err := r.confirmer.WaitForTransaction(waitCtx, submission.TransactionHash)
	if err == nil && receipt == nil {
		err = fmt.Errorf("%w: no receipt", network.ErrInvalidResponse)
	}
	if err != nil {
		log.Warn("transaction not confirmed", "action", spec.Name, "hash", submission.TransactionHash, "error", err)
		return data.NewFailure(spec.Name, submission, &data.ConfirmationError{TransactionHash: submission.TransactionHash, Err: err})
	}

	if receipt.Status == data.StatusConfirmed {
		log.Info("transaction confirmed", "action", spec.Name, "hash", submission.TransactionHash,
			"block", receipt.BlockNumber, "gasUsed", receipt.GasUsed)
	} else {
		log.Warn("transaction finished", "action", spec.Name, "hash", submission.TransactionHash, "status", receipt.Status)
	}

	return data.NewSuccess(spec.Name, submission, receipt)
}

func (r *Runner) submit(ctx context.Context, spec data.ActionSpec) (*data.TransactionSubmission, error) {
	r.submitMut.Lock()
	defer r.submitMut.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.binding.Invoke(ctx, spec.Operation, spec.Args...)
}
