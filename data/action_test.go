package data

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionResult_MarshalSuccess(t *testing.T) {
	submission := &TransactionSubmission{TransactionHash: "0xaaa"}
	receipt := &ConfirmationReceipt{TransactionHash: "0xaaa", Status: StatusConfirmed}

	bytes, err := json.Marshal(NewSuccess("", submission, receipt))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": true,
		"transaction": {
			"transaction": {"transaction_hash": "0xaaa"},
			"hash": {"transaction_hash": "0xaaa", "status": "confirmed"}
		}
	}`, string(bytes))
}

func TestActionResult_MarshalFailure(t *testing.T) {
	err := &SubmissionError{Operation: "gamble", Err: errors.New("boom")}

	bytes, jsonErr := json.Marshal(NewFailure("guessLong", nil, err))
	require.NoError(t, jsonErr)
	assert.JSONEq(t, `{"success": false, "action": "guessLong", "error": "submit gamble: boom"}`, string(bytes))
}

func TestActionResult_FailureKeepsSubmission(t *testing.T) {
	submission := &TransactionSubmission{TransactionHash: "0xbbb"}
	res := NewFailure("resetGame", submission, &ConfirmationError{TransactionHash: "0xbbb", Err: errors.New("timeout")})

	assert.False(t, res.Confirmed())
	assert.Equal(t, "0xbbb", res.TransactionHash())

	bytes, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(bytes), `"submission":{"transaction_hash":"0xbbb"}`)
}

func TestActionResult_Confirmed(t *testing.T) {
	submission := &TransactionSubmission{TransactionHash: "0x1"}

	assert.True(t, NewSuccess("a", submission, &ConfirmationReceipt{Status: StatusConfirmed}).Confirmed())
	assert.False(t, NewSuccess("a", submission, &ConfirmationReceipt{Status: StatusReverted}).Confirmed())
}

func TestErrors_Unwrap(t *testing.T) {
	inner := errors.New("inner")

	var subErr *SubmissionError
	assert.True(t, errors.As(error(&SubmissionError{Err: inner}), &subErr))
	assert.ErrorIs(t, &SubmissionError{Err: inner}, inner)
	assert.ErrorIs(t, &ConfirmationError{Err: inner}, inner)
	assert.ErrorIs(t, &ConfigurationError{Field: "proxy", Err: ErrMissingField}, ErrMissingField)
}

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"90s"`), &d))
	assert.Equal(t, "1m30s", d.String())

	assert.Error(t, json.Unmarshal([]byte(`90`), &d))

	bytes, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(bytes))
}
