package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesOnlyItsKind(t *testing.T) {
	sentinels := map[Kind]error{
		KindAuthentication: ErrAuthentication,
		KindRateLimit:      ErrRateLimited,
		KindAPI:            ErrAPI,
		KindServer:         ErrServer,
		KindTimeout:        ErrTimeout,
		KindNetwork:        ErrNetwork,
	}

	for kind, sentinel := range sentinels {
		err := fmt.Errorf("wrapped: %w", &Error{Kind: kind, Message: "m"})
		for other, otherSentinel := range sentinels {
			assert.Equal(t, kind == other, errors.Is(err, otherSentinel), "%s vs %s", kind, other)
		}
		assert.True(t, errors.Is(err, sentinel))
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, (&Error{Kind: KindServer}).Retryable())
	assert.True(t, (&Error{Kind: KindTimeout}).Retryable())
	assert.True(t, (&Error{Kind: KindNetwork}).Retryable())
	assert.False(t, (&Error{Kind: KindAuthentication}).Retryable())
	assert.False(t, (&Error{Kind: KindRateLimit}).Retryable())
	assert.False(t, (&Error{Kind: KindAPI}).Retryable())
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := networkError(cause)
	assert.Equal(t, "Network error: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "network", KindNetwork.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
