package pipeline

import "fmt"

// runWorker runs fn on a dedicated goroutine and blocks until it returns.
// A panic inside fn is recovered and returned as an error wrapping ErrPanic.
func runWorker(fn func() error) error {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()
		done <- fn()
	}()
	return <-done
}
