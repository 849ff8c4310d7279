package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCallerContext_CanActOn(t *testing.T) {
	storeA := uuid.New()
	storeB := uuid.New()
	caller := NewCallerContext(uuid.New(), uuid.New(), []uuid.UUID{storeA})

	assert.True(t, caller.CanActOn(storeA))
	assert.False(t, caller.CanActOn(storeB))

	empty := NewCallerContext(uuid.New(), uuid.New(), nil)
	assert.False(t, empty.CanActOn(storeA))
}

func TestCallerContext_Validate(t *testing.T) {
	assert.NoError(t, NewCallerContext(uuid.New(), uuid.New(), nil).Validate())
	assert.ErrorIs(t, NewCallerContext(uuid.Nil, uuid.New(), nil).Validate(), ErrUnauthorized)
	assert.ErrorIs(t, NewCallerContext(uuid.New(), uuid.Nil, nil).Validate(), ErrUnauthorized)
}
