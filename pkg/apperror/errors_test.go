package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
		{ErrCacheUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: zadd: connection refused", ErrCacheUnavailable), http.StatusServiceUnavailable},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MapErrorToStatus(tc.err), "error: %v", tc.err)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	wrapped := New(http.StatusServiceUnavailable, "leaderboard degraded", ErrCacheUnavailable)

	assert.ErrorIs(t, wrapped, ErrCacheUnavailable)
	assert.Equal(t, ErrCacheUnavailable.Error(), wrapped.Error())
}
