// Package pipeio shuffles bytes between the probe's terminal and the
// endpoint connection.
package pipeio

import (
	"fmt"
	"io"
	"sync"
)

// Pipe copies in both directions between rwc1 and rwc2 until either side
// ends. Both sides are closed before Pipe returns. Copy errors are passed
// to logfunc.
func Pipe(rwc1 io.ReadWriteCloser, rwc2 io.ReadWriteCloser, logfunc func(error)) {
	var wg sync.WaitGroup
	var o sync.Once

	close := func() {
		rwc1.Close()
		rwc2.Close()

		wg.Done()
	}
	wg.Add(1)

	go func() {
		if _, err := io.Copy(rwc1, rwc2); err != nil {
			logfunc(fmt.Errorf("io.Copy(rwc1, rwc2): %w", err))
		}

		o.Do(close)
	}()

	go func() {
		if _, err := io.Copy(rwc2, rwc1); err != nil {
			logfunc(fmt.Errorf("io.Copy(rwc2, rwc1): %w", err))
		}

		o.Do(close)
	}()

	wg.Wait()
}
