package pancake

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:3842")
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestNewCorrelationID(t *testing.T) {
	first := NewCorrelationID()
	second := NewCorrelationID()

	_, err := uuid.Parse(first)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
