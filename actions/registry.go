package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/DrDelphi/TenPercentBot/data"
)

// Logical action names
const (
	StartGame  = "startGame"
	GuessShort = "guessShort"
	GuessLong  = "guessLong"
	ResetGame  = "resetGame"
)

var ErrUnknownAction = errors.New("unknown action")

var table = []data.ActionSpec{
	{Name: StartGame, Operation: "start_game", Args: []interface{}{}},
	{Name: GuessShort, Operation: "gamble", Args: []interface{}{false}},
	{Name: GuessLong, Operation: "gamble", Args: []interface{}{true}},
	{Name: ResetGame, Operation: "reset_game", Args: []interface{}{}},
}

// Names lists the actions in their fixed order
func Names() []string {
	names := make([]string, 0, len(table))
	for _, spec := range table {
		names = append(names, spec.Name)
	}

	return names
}

// Lookup returns a copy of the ActionSpec registered under name
func Lookup(name string) (data.ActionSpec, bool) {
	for _, spec := range table {
		if spec.Name == name {
			args := make([]interface{}, len(spec.Args))
			copy(args, spec.Args)
			spec.Args = args
			return spec, true
		}
	}

	return data.ActionSpec{}, false
}

// Registry exposes the game actions, each a fixed call through the Runner
type Registry struct {
	runner *Runner
}

func NewRegistry(runner *Runner) *Registry {
	return &Registry{runner: runner}
}

// Run executes the action registered under name
func (r *Registry) Run(ctx context.Context, name string) *data.ActionResult {
	spec, ok := Lookup(name)
	if !ok {
		return data.NewFailure(name, nil, &data.SubmissionError{Operation: name, Err: fmt.Errorf("%w: %s", ErrUnknownAction, name)})
	}

	return r.runner.Run(ctx, spec)
}

func (r *Registry) StartGame(ctx context.Context) *data.ActionResult {
	return r.Run(ctx, StartGame)
}

func (r *Registry) GuessShort(ctx context.Context) *data.ActionResult {
	return r.Run(ctx, GuessShort)
}

func (r *Registry) GuessLong(ctx context.Context) *data.ActionResult {
	return r.Run(ctx, GuessLong)
}

func (r *Registry) ResetGame(ctx context.Context) *data.ActionResult {
	return r.Run(ctx, ResetGame)
}
