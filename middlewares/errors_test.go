package middlewares_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/middlewares"
)

func TestPanicError(t *testing.T) {
	t.Parallel()

	t.Run("message carries the panic value", func(t *testing.T) {
		t.Parallel()

		for _, tc := range []struct {
			value any
			want  string
		}{
			{"database gone", "panic: database gone"},
			{42, "panic: 42"},
			{nil, "panic: <nil>"},
		} {
			err := &middlewares.PanicError{Value: tc.value}
			require.Equal(t, tc.want, err.Error())
		}
	})

	t.Run("detection", func(t *testing.T) {
		t.Parallel()

		t.Run("spots a bare panic error", func(t *testing.T) {
			t.Parallel()

			require.True(t, middlewares.IsPanicError(&middlewares.PanicError{Value: "x"}))
		})

		t.Run("searches joined errors", func(t *testing.T) {
			t.Parallel()

			joined := errors.Join(&middlewares.PanicError{Value: "x"}, errors.New("cleanup failed"))
			require.True(t, middlewares.IsPanicError(joined))
		})

		t.Run("nil is not a panic error", func(t *testing.T) {
			t.Parallel()

			require.False(t, middlewares.IsPanicError(nil))
		})
	})

	t.Run("extraction keeps value and stack", func(t *testing.T) {
		t.Parallel()

		orig := &middlewares.PanicError{Value: "boom", Stack: []byte("goroutine 1")}
		wrapped := internal.ErrInternal("internal server error", internal.WithError(orig))

		pe, ok := middlewares.AsPanicError(wrapped)
		require.True(t, ok)
		require.Same(t, orig, pe)
	})

	t.Run("extraction misses on nil", func(t *testing.T) {
		t.Parallel()

		pe, ok := middlewares.AsPanicError(nil)
		require.False(t, ok)
		require.Nil(t, pe)
	})
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()

	t.Run("message states the missed deadline", func(t *testing.T) {
		t.Parallel()

		for _, tc := range []struct {
			d    time.Duration
			want string
		}{
			{5 * time.Second, "request timeout after 5s"},
			{100 * time.Millisecond, "request timeout after 100ms"},
		} {
			err := &middlewares.TimeoutError{Duration: tc.d}
			require.Equal(t, tc.want, err.Error())
		}
	})

	t.Run("detection sees through the HTTP envelope", func(t *testing.T) {
		t.Parallel()

		wrapped := internal.NewHTTPError(http.StatusGatewayTimeout, "request timeout",
			internal.WithError(&middlewares.TimeoutError{Duration: time.Second}))
		require.True(t, middlewares.IsTimeoutError(wrapped))
		require.False(t, middlewares.IsTimeoutError(errors.New("slow but fine")))
	})

	t.Run("extraction surfaces the duration", func(t *testing.T) {
		t.Parallel()

		orig := &middlewares.TimeoutError{Duration: 2 * time.Second}
		wrapped := internal.NewHTTPError(http.StatusGatewayTimeout, "request timeout", internal.WithError(orig))

		te, ok := middlewares.AsTimeoutError(wrapped)
		require.True(t, ok)
		require.Equal(t, 2*time.Second, te.Duration)

		te, ok = middlewares.AsTimeoutError(nil)
		require.False(t, ok)
		require.Nil(t, te)
	})
}
