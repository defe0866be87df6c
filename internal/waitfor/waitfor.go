// Package waitfor blocks until remote state converges, failing after a fixed
// timeout. It is used by automation that has to wait for asynchronous
// server-side transitions (jobs, container deployment, process lifecycle).
package waitfor

import (
	"errors"
	"fmt"
	"time"
)

const (
	// ServiceTimeout bounds every wait.
	ServiceTimeout = 30 * time.Second
	// PollInterval is the constant delay between evaluations.
	PollInterval = 200 * time.Millisecond
)

// ErrTimeout matches every *TimeoutError via errors.Is.
var ErrTimeout = errors.New("synchronization timed out")

// TimeoutError is returned when a condition never held within the timeout.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("Synchronization failed for defined timeout: %d milliseconds.", e.Timeout.Milliseconds())
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// Condition is a point-in-time probe. An error aborts the wait.
type Condition func() (bool, error)

// Until evaluates cond every PollInterval until it reports true, returns an
// error, or ServiceTimeout has elapsed.
func Until(cond Condition) error {
	return poller{timeout: ServiceTimeout, interval: PollInterval}.until(cond)
}

type poller struct {
	timeout  time.Duration
	interval time.Duration
}

func (p poller) until(cond Condition) error {
	start := time.Now()
	for {
		ok, err := cond()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		time.Sleep(p.interval)
		// time.Since reads the monotonic clock, so wall-clock steps do not
		// move the deadline.
		if time.Since(start) >= p.timeout {
			return &TimeoutError{Timeout: p.timeout}
		}
	}
}
