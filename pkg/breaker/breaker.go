package breaker

import (
	"errors"
	"sync"
	"time"
)

type Status uint8

const (
	Closed   Status = 1
	Open     Status = 2
	HalfOpen Status = 3
)

var ErrOpen = errors.New("circuit breaker is open")

type Breaker interface {
	Call(fn func() error) error
	Reset()
}

// breaker trips open when the failure share over the last recordLength
// calls reaches percentile, and closes again after recoveryRequests
// consecutive successes in half-open.
type breaker struct {
	mu sync.Mutex

	state           Status
	recordLength    int
	timeout         time.Duration
	lastAttemptedAt time.Time
	percentile      float64
	buffer          []bool
	pos             int

	recoveryRequests int
	successCount     int
}

func New(recordLength int, timeout time.Duration, percentile float64, recoveryRequests int) Breaker {
	return &breaker{
		state:            Closed,
		recordLength:     recordLength,
		timeout:          timeout,
		percentile:       percentile,
		buffer:           make([]bool, recordLength),
		recoveryRequests: recoveryRequests,
	}
}

func (b *breaker) Call(fn func() error) error {
	b.mu.Lock()
	if b.state == Open {
		if elapsed := time.Since(b.lastAttemptedAt); elapsed > b.timeout {
			b.state = HalfOpen
			b.successCount = 0
		} else {
			b.mu.Unlock()
			return ErrOpen
		}
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.buffer[b.pos] = err != nil
	b.pos = (b.pos + 1) % b.recordLength

	if b.state == HalfOpen {
		if err != nil {
			b.successCount = 0
			b.state = Open
			b.lastAttemptedAt = time.Now()
		} else {
			b.successCount++
			if b.successCount > b.recoveryRequests {
				b.Reset()
			}
		}
		return err
	}

	fails := 0
	for _, failed := range b.buffer {
		if failed {
			fails++
		}
	}
	if float64(fails)/float64(b.recordLength) >= b.percentile {
		b.state = Open
		b.successCount = 0
		b.lastAttemptedAt = time.Now()
	}

	return err
}

func (b *breaker) Reset() {
	for i := range b.buffer {
		b.buffer[i] = false
	}
	b.successCount = 0
	b.pos = 0
	b.state = Closed
}
