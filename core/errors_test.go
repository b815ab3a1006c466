package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHTTPStatusError(t *testing.T) {
	wrapped := fmt.Errorf("fetch user: %w", &HTTPStatusError{StatusCode: 502, Body: "bad gateway"})

	statusErr, ok := IsHTTPStatusError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 502, statusErr.StatusCode)
	assert.Contains(t, wrapped.Error(), "status 502")

	_, ok = IsHTTPStatusError(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsTornAPIError(t *testing.T) {
	wrapped := fmt.Errorf("fetch user: %w", &TornAPIError{Code: 2, Message: "Incorrect key"})

	apiErr, ok := IsTornAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 2, apiErr.Code)
	assert.Equal(t, "torn api error 2: Incorrect key", apiErr.Error())

	_, ok = IsTornAPIError(&HTTPStatusError{StatusCode: 500})
	assert.False(t, ok)
}
