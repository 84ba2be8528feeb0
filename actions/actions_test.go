package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DrDelphi/TenPercentBot/data"
	"github.com/DrDelphi/TenPercentBot/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invocation struct {
	operation string
	args      []interface{}
}

type fakeBinding struct {
	mut      sync.Mutex
	calls    []invocation
	failOn   map[string]error
	inFlight int
	overlap  bool
	delay    time.Duration
}

func (f *fakeBinding) Invoke(_ context.Context, operation string, args ...interface{}) (*data.TransactionSubmission, error) {
	f.mut.Lock()
	f.inFlight++
	if f.inFlight > 1 {
		f.overlap = true
	}
	f.calls = append(f.calls, invocation{operation: operation, args: args})
	n := len(f.calls)
	err := f.failOn[operation]
	f.mut.Unlock()

	time.Sleep(f.delay)

	f.mut.Lock()
	f.inFlight--
	f.mut.Unlock()

	if err != nil {
		return nil, err
	}

	return &data.TransactionSubmission{TransactionHash: fmt.Sprintf("0x%03x", n)}, nil
}

type fakeConfirmer struct {
	mut    sync.Mutex
	hashes []string
	status data.ReceiptStatus
	err    error
	block  bool
	empty  bool
}

func (f *fakeConfirmer) WaitForTransaction(ctx context.Context, hash string) (*data.ConfirmationReceipt, error) {
	f.mut.Lock()
	f.hashes = append(f.hashes, hash)
	f.mut.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.empty {
		return nil, nil
	}

	status := f.status
	if status == "" {
		status = data.StatusConfirmed
	}

	return &data.ConfirmationReceipt{TransactionHash: hash, Status: status}, nil
}

func newTestRunner(t *testing.T, binding *fakeBinding, confirmer *fakeConfirmer, timeout time.Duration) *Runner {
	t.Helper()
	runner, err := NewRunner(binding, confirmer, timeout)
	require.NoError(t, err)

	return runner
}

func newTestRegistry(t *testing.T, binding *fakeBinding, confirmer *fakeConfirmer) *Registry {
	return NewRegistry(newTestRunner(t, binding, confirmer, time.Second))
}

func actionFuncs(r *Registry) map[string]func(context.Context) *data.ActionResult {
	return map[string]func(context.Context) *data.ActionResult{
		StartGame:  r.StartGame,
		GuessShort: r.GuessShort,
		GuessLong:  r.GuessLong,
		ResetGame:  r.ResetGame,
	}
}

func TestRegistry_Success(t *testing.T) {
	for name := range actionFuncs(nil) {
		t.Run(name, func(t *testing.T) {
			binding := &fakeBinding{}
			confirmer := &fakeConfirmer{}
			r := newTestRegistry(t, binding, confirmer)

			res := actionFuncs(r)[name](context.Background())

			require.True(t, res.Success, "error: %v", res.Error)
			assert.Nil(t, res.Error)
			assert.Equal(t, name, res.Action)
			assert.Equal(t, data.StatusConfirmed, res.Transaction.Hash.Status)
			assert.Equal(t, "0x001", res.Transaction.Transaction.TransactionHash)
			assert.True(t, res.Confirmed())
			assert.Equal(t, []string{"0x001"}, confirmer.hashes)
		})
	}
}

func TestRegistry_SubmissionFailureSkipsConfirmation(t *testing.T) {
	for name := range actionFuncs(nil) {
		t.Run(name, func(t *testing.T) {
			spec, ok := Lookup(name)
			require.True(t, ok)
			cause := errors.New("signature rejected")
			binding := &fakeBinding{failOn: map[string]error{spec.Operation: cause}}
			confirmer := &fakeConfirmer{}
			r := newTestRegistry(t, binding, confirmer)

			res := actionFuncs(r)[name](context.Background())

			assert.False(t, res.Success)
			assert.Nil(t, res.Transaction)
			assert.Nil(t, res.Submission)
			assert.ErrorIs(t, res.Error, cause)
			var subErr *data.SubmissionError
			require.ErrorAs(t, res.Error, &subErr)
			assert.Equal(t, spec.Operation, subErr.Operation)
			assert.Empty(t, confirmer.hashes)
		})
	}
}

func TestRegistry_ConfirmationFailureKeepsSubmission(t *testing.T) {
	for name := range actionFuncs(nil) {
		t.Run(name, func(t *testing.T) {
			cause := errors.New("connection dropped")
			r := newTestRegistry(t, &fakeBinding{}, &fakeConfirmer{err: cause})

			res := actionFuncs(r)[name](context.Background())

			assert.False(t, res.Success)
			require.NotNil(t, res.Submission)
			assert.Equal(t, "0x001", res.Submission.TransactionHash)
			assert.Equal(t, "0x001", res.TransactionHash())
			var confErr *data.ConfirmationError
			require.ErrorAs(t, res.Error, &confErr)
			assert.Equal(t, "0x001", confErr.TransactionHash)
			assert.ErrorIs(t, res.Error, cause)
		})
	}
}

func TestRunner_ConfirmationTimeout(t *testing.T) {
	runner := newTestRunner(t, &fakeBinding{}, &fakeConfirmer{block: true}, 10*time.Millisecond)

	spec, _ := Lookup(StartGame)
	res := runner.Run(context.Background(), spec)

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Error, context.DeadlineExceeded)
	assert.Equal(t, "0x001", res.TransactionHash())
}

func TestRunner_CancelledBeforeSubmit(t *testing.T) {
	binding := &fakeBinding{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	spec, _ := Lookup(ResetGame)
	res := newTestRunner(t, binding, &fakeConfirmer{}, time.Second).Run(ctx, spec)

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Error, context.Canceled)
	assert.Empty(t, binding.calls)
}

func TestRunner_RevertedIsTerminal(t *testing.T) {
	r := newTestRegistry(t, &fakeBinding{}, &fakeConfirmer{status: data.StatusReverted})

	res := r.GuessLong(context.Background())

	assert.True(t, res.Success)
	assert.False(t, res.Confirmed())
	assert.Equal(t, data.StatusReverted, res.Transaction.Hash.Status)
}

func TestRegistry_ResetTwiceIsNotCached(t *testing.T) {
	binding := &fakeBinding{}
	r := newTestRegistry(t, binding, &fakeConfirmer{})

	first := r.ResetGame(context.Background())
	second := r.ResetGame(context.Background())

	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.NotEqual(t, first.TransactionHash(), second.TransactionHash())
	assert.Len(t, binding.calls, 2)
}

func TestRegistry_ArgumentMapping(t *testing.T) {
	binding := &fakeBinding{}
	r := newTestRegistry(t, binding, &fakeConfirmer{})

	r.StartGame(context.Background())
	r.GuessShort(context.Background())
	r.GuessLong(context.Background())
	r.ResetGame(context.Background())

	assert.Equal(t, []invocation{
		{operation: "start_game", args: []interface{}{}},
		{operation: "gamble", args: []interface{}{false}},
		{operation: "gamble", args: []interface{}{true}},
		{operation: "reset_game", args: []interface{}{}},
	}, binding.calls)
}

func TestRegistry_StartGameScenario(t *testing.T) {
	r := newTestRegistry(t, &fakeBinding{}, &fakeConfirmer{})

	res := r.StartGame(context.Background())
	res.Action = ""

	bytes, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": true,
		"transaction": {
			"transaction": {"transaction_hash": "0x001"},
			"hash": {"transaction_hash": "0x001", "status": "confirmed"}
		}
	}`, string(bytes))
}

func TestRegistry_GuessLongThrows(t *testing.T) {
	cause := errors.New("gamble(true) reverted at call time")
	binding := &fakeBinding{failOn: map[string]error{"gamble": cause}}
	confirmer := &fakeConfirmer{}
	r := newTestRegistry(t, binding, confirmer)

	res := r.GuessLong(context.Background())

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Error, cause)
	assert.Equal(t, []invocation{{operation: "gamble", args: []interface{}{true}}}, binding.calls)
	assert.Empty(t, confirmer.hashes)
}

func TestRegistry_UnknownAction(t *testing.T) {
	binding := &fakeBinding{}
	r := newTestRegistry(t, binding, &fakeConfirmer{})

	res := r.Run(context.Background(), "withdraw")

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Error, ErrUnknownAction)
	assert.Empty(t, binding.calls)
}

func TestRunner_SerializesSubmissions(t *testing.T) {
	binding := &fakeBinding{delay: 5 * time.Millisecond}
	r := newTestRegistry(t, binding, &fakeConfirmer{})

	var wg sync.WaitGroup
	results := make([]*data.ActionResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.GuessShort(context.Background())
		}(i)
	}
	wg.Wait()

	assert.False(t, binding.overlap)
	seen := make(map[string]bool)
	for _, res := range results {
		require.True(t, res.Success)
		seen[res.TransactionHash()] = true
	}
	assert.Len(t, seen, len(results))
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{StartGame, GuessShort, GuessLong, ResetGame}, Names())

	spec, ok := Lookup(GuessLong)
	require.True(t, ok)
	spec.Args[0] = false

	again, _ := Lookup(GuessLong)
	assert.Equal(t, []interface{}{true}, again.Args)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestRunner_MissingReceiptIsConfirmationFailure(t *testing.T) {
	r := newTestRegistry(t, &fakeBinding{}, &fakeConfirmer{empty: true})

	res := r.StartGame(context.Background())

	assert.False(t, res.Success)
	var confErr *data.ConfirmationError
	require.ErrorAs(t, res.Error, &confErr)
	assert.ErrorIs(t, res.Error, network.ErrInvalidResponse)
	assert.Equal(t, "0x001", res.TransactionHash())
	assert.Nil(t, res.Transaction)
}

func TestNewRunner_RejectsNonPositiveTimeout(t *testing.T) {
	for _, timeout := range []time.Duration{0, -time.Second} {
		runner, err := NewRunner(&fakeBinding{}, &fakeConfirmer{}, timeout)
		assert.Nil(t, runner)
		assert.ErrorIs(t, err, errInvalidTimeout)
	}
}
