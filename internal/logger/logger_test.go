package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDevelopmentBuildsLogger(t *testing.T) {
	l, err := New("development")
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewProductionBuildsLogger(t *testing.T) {
	l, err := New("production")
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewDefaultsToProductionForUnknownEnv(t *testing.T) {
	l, err := New("whatever")
	require.NoError(t, err)
	assert.NotNil(t, l)
}
