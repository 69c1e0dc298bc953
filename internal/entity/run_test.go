package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRunIDUnique(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEqual(t, a, b)
}
