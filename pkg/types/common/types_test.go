package common_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/SmilesKit/pkg/types/common"
)

func TestNewID_IsValidUUID(t *testing.T) {
	t.Parallel()

	id := common.NewID()
	require.NotEmpty(t, string(id))

	_, err := uuid.Parse(string(id))
	assert.NoError(t, err)

	assert.NotEqual(t, id, common.NewID())
}

func TestBaseEntity_Touch(t *testing.T) {
	t.Parallel()

	e := common.BaseEntity{ID: common.NewID(), CreatedAt: time.Now().UTC()}
	before := e.UpdatedAt

	e.Touch()

	assert.Equal(t, 1, e.Version)
	assert.True(t, e.UpdatedAt.After(before) || before.IsZero())

	e.Touch()
	assert.Equal(t, 2, e.Version)
}
