package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/longkey1/fincoach/internal/localstate"
	"github.com/longkey1/fincoach/internal/mutation"
	"github.com/longkey1/fincoach/internal/render"
)

// lastResultKey is the local state key of a calculator's last good result.
func lastResultKey(name string) string {
	return "last:" + name
}

type validator interface {
	Validate() error
}

// calculation is one run of a calculator form.
type calculation[In validator, Out any] struct {
	name string
	call func(context.Context, In) (*Out, error)
	draw func(Out) string
}

// run submits in and prints the panel: the last good result, if any, under
// a banner for the latest failure. A success replaces the stored result.
func (c calculation[In, Out]) run(ctx context.Context, a *app, in In, showLast bool) error {
	state, err := a.stateStore()
	if err != nil {
		return err
	}

	var panel mutation.Panel[Out]
	var last Out
	switch err := state.GetJSON(ctx, lastResultKey(c.name), &last); {
	case err == nil:
		panel.Result = &last
	case errors.Is(err, localstate.ErrNotFound):
	default:
		a.logger.Warn("ignoring stored result", "calculator", c.name, "error", err)
	}

	if showLast {
		if !panel.HasResult() {
			fmt.Printf("No previous %s result.\n", c.name)
			return nil
		}
		fmt.Println(render.View(panel, c.draw))
		return nil
	}

	if err := in.Validate(); err != nil {
		return err
	}

	tracker := mutation.New[Out](c.name)
	done := make(chan bool)
	go showSpinner(done, "Calculating...")
	_, _, err = tracker.Run(ctx, func(ctx context.Context) (Out, error) {
		r, err := c.call(ctx, in)
		if err != nil {
			var zero Out
			return zero, err
		}
		return *r, nil
	})
	done <- true
	close(done)

	result := tracker.State()
	panel.Apply(result)
	if result.Status == mutation.StatusSuccess {
		if err := state.SetJSON(ctx, lastResultKey(c.name), result.Data); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save result: %v\n", err)
		}
	}

	fmt.Println(render.View(panel, c.draw))
	if err != nil {
		return errReported
	}
	return nil
}
