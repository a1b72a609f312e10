package breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/bookhive/borrow-service/pkg/breaker"
	"github.com/stretchr/testify/require"
)

func Test_breaker_Call(t *testing.T) {
	ok := func() error { return nil }
	fail := func() error { return errors.New("service error") }

	b := breaker.New(10, 50*time.Millisecond, 0.30, 3)

	for i := 0; i < 20; i++ {
		require.NoError(t, b.Call(ok))
	}

	// enough failures to trip open
	for i := 0; i < 10; i++ {
		_ = b.Call(fail)
	}
	require.ErrorIs(t, b.Call(ok), breaker.ErrOpen)

	// after the timeout the breaker goes half-open and recovers on
	// consecutive successes
	time.Sleep(60 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, b.Call(ok))
	}
	require.NoError(t, b.Call(ok))

	// a failure in half-open trips it straight back open
	for i := 0; i < 10; i++ {
		_ = b.Call(fail)
	}
	require.ErrorIs(t, b.Call(ok), breaker.ErrOpen)
	time.Sleep(60 * time.Millisecond)
	require.Error(t, b.Call(fail))
	require.ErrorIs(t, b.Call(ok), breaker.ErrOpen)
}
