package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrNotScheduled is returned when the context is done before the transform
// task is handed to the pool.
var ErrNotScheduled = errors.New("transform task not scheduled")

// TransformService runs a TransformCommand off the calling goroutine.
type TransformService struct {
	command *TransformCommand
}

// NewTransformService creates a TransformService.
func NewTransformService(cmd *TransformCommand) *TransformService {
	return &TransformService{command: cmd}
}

// TransformAndSave submits one command execution to a worker pool sized by
// GOMAXPROCS and waits for it. The command contains its own failures in the
// Result; the returned error only reports that the task was never scheduled.
func (s *TransformService) TransformAndSave(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrNotScheduled, err)
	}

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	var res Result
	g.Go(func() error {
		res = s.command.Execute(ctx)
		return nil
	})
	_ = g.Wait() // Execute reports failures in res
	return res, nil
}
