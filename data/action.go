package data

import (
	"encoding/json"
)

// ActionSpec binds a logical action name to a contract operation and its fixed arguments
type ActionSpec struct {
	Name      string
	Operation string
	Args      []interface{}
}

// ActionTransaction pairs the submission with its confirmation receipt
type ActionTransaction struct {
	Transaction *TransactionSubmission `json:"transaction"`
	Hash        *ConfirmationReceipt   `json:"hash"`
}

// ActionResult is the only value an action hands back to its caller.
// Success carries Transaction; failure carries Error and, when the call
// reached the network before failing, Submission.
type ActionResult struct {
	Success     bool
	Action      string
	Transaction *ActionTransaction
	Submission  *TransactionSubmission
	Error       error
}

// NewSuccess - creates a successful action result
func NewSuccess(action string, submission *TransactionSubmission, receipt *ConfirmationReceipt) *ActionResult {
	return &ActionResult{
		Success: true,
		Action:  action,
		Transaction: &ActionTransaction{
			Transaction: submission,
			Hash:        receipt,
		},
		Submission: submission,
	}
}

// NewFailure - creates a failed action result; submission may be nil
func NewFailure(action string, submission *TransactionSubmission, err error) *ActionResult {
	return &ActionResult{
		Success:    false,
		Action:     action,
		Submission: submission,
		Error:      err,
	}
}

// Confirmed - true when the transaction was included and did not revert
func (r *ActionResult) Confirmed() bool {
	return r.Success && r.Transaction != nil && r.Transaction.Hash != nil &&
		r.Transaction.Hash.Status == StatusConfirmed
}

// TransactionHash returns the submission identifier, if there is one
func (r *ActionResult) TransactionHash() string {
	if r.Submission != nil {
		return r.Submission.TransactionHash
	}
	if r.Transaction != nil && r.Transaction.Transaction != nil {
		return r.Transaction.Transaction.TransactionHash
	}

	return ""
}

type actionResultJSON struct {
	Success     bool                   `json:"success"`
	Action      string                 `json:"action,omitempty"`
	Transaction *ActionTransaction     `json:"transaction,omitempty"`
	Submission  *TransactionSubmission `json:"submission,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

func (r ActionResult) MarshalJSON() ([]byte, error) {
	out := actionResultJSON{
		Success:     r.Success,
		Action:      r.Action,
		Transaction: r.Transaction,
	}
	if !r.Success {
		out.Submission = r.Submission
	}
	if r.Error != nil {
		out.Error = r.Error.Error()
	}

	return json.Marshal(out)
}
