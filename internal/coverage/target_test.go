package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schedcu/shiftplan/internal/entity"
)

func TestNumSlots(t *testing.T) {
	target := Target{SlotMinutes: 15, Days: 2}
	assert.Equal(t, 192, target.NumSlots())
}

func TestValidateRejectsNonPositiveSlotMinutes(t *testing.T) {
	target := Target{SlotMinutes: 0, Days: 1, Values: make([]float64, 96)}
	err := target.Validate()
	kind, ok := entity.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, entity.KindConfigError, kind)
}

func TestValidateRejectsLengthMismatch(t *testing.T) {
	target := Target{SlotMinutes: 15, Days: 1, Values: make([]float64, 10)}
	assert.Error(t, target.Validate())
}

func TestValidateRejectsNegativeValue(t *testing.T) {
	values := make([]float64, 96)
	values[3] = -1
	target := Target{SlotMinutes: 15, Days: 1, Values: values}
	assert.Error(t, target.Validate())
}

func TestValidateAcceptsWellFormedTarget(t *testing.T) {
	target := Target{SlotMinutes: 15, Days: 1, Values: make([]float64, 96)}
	assert.NoError(t, target.Validate())
}
