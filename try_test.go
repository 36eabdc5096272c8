package catch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTry(t *testing.T) {
	t.Parallel()

	t.Run("panics", func(t *testing.T) {
		t.Parallel()

		err := errors.New("SOS")
		ex := Try(func() { panic(err) })
		require.ErrorIs(t, ex.AsError(), err)
		require.ErrorAs(t, ex.AsError(), &err)
		// The exact contents aren't tested because the stacktrace contains local file paths
		// and even the structure of the stacktrace is bound to be unstable over time. Just
		// test a couple of basics.
		require.Contains(t, ex.String(), "SOS", "formatted exception should contain the panic message")
		require.Contains(t, ex.String(), "catch.(*Catcher).Try", ex.String(), "formatted exception should contain the stack trace")
	})

	t.Run("no panic", func(t *testing.T) {
		t.Parallel()

		ex := Try(func() {})
		require.Nil(t, ex)
		require.NoError(t, ex.AsError())
	})

	t.Run("never leaks the panic", func(t *testing.T) {
		t.Parallel()

		require.NotPanics(t, func() {
			Try(func() { panic("should stay inside") })
		})
	})

	t.Run("string panic keeps its message", func(t *testing.T) {
		t.Parallel()

		ex := Try(func() { panic("boom") })
		require.NotNil(t, ex)
		require.Equal(t, "boom", ex.Value)
		require.Equal(t, "boom", ex.Reason())
		require.Equal(t, "string", ex.Name())
	})

	t.Run("side effects before the panic survive", func(t *testing.T) {
		t.Parallel()

		count := 0
		ex := Try(func() {
			count++
			panic("after increment")
		})
		require.NotNil(t, ex)
		require.Equal(t, 1, count)
	})

	t.Run("sequential calls yield independent records", func(t *testing.T) {
		t.Parallel()

		first := Try(func() { panic("boom") })
		second := Try(func() { panic("boom") })
		require.NotNil(t, first)
		require.NotNil(t, second)
		require.NotSame(t, first, second)
		require.Equal(t, first.Value, second.Value)
		require.Equal(t, first.Reason(), second.Reason())
		require.Equal(t, first.Name(), second.Name())
	})
}
