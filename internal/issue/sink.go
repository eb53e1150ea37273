// SPDX-License-Identifier: MPL-2.0

package issue

import "sync"

type (
	// Sink receives DataErrors as they are raised, before they propagate to
	// the caller. Renderers and test collectors implement it.
	Sink interface {
		Report(err *DataError)
	}

	// SinkFunc adapts a function to the Sink interface.
	SinkFunc func(err *DataError)

	// Collector is a Sink that keeps every reported error.
	Collector struct {
		mu   sync.Mutex
		errs []*DataError
	}
)

// Report calls f(err).
func (f SinkFunc) Report(err *DataError) { f(err) }

// Report records err.
func (c *Collector) Report(err *DataError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
}

// Errors returns the reported errors in order.
func (c *Collector) Errors() []*DataError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*DataError(nil), c.errs...)
}
