package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceLockExcludesSecondInstance(t *testing.T) {
	first, err := AcquireInstanceLock("idlewatch-test")
	require.NoError(t, err)
	defer func() {
		_ = first.Release()
	}()

	_, err = AcquireInstanceLock("idlewatch-test")
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestInstanceLockReacquireAfterRelease(t *testing.T) {
	first, err := AcquireInstanceLock("idlewatch-test-reacquire")
	require.NoError(t, err)
	require.NoError(t, first.Release())

	second, err := AcquireInstanceLock("idlewatch-test-reacquire")
	require.NoError(t, err)
	assert.NotEmpty(t, second.Address())
	require.NoError(t, second.Release())
}

func TestReleaseNilLockIsNoOp(t *testing.T) {
	var lock *InstanceLock
	assert.NoError(t, lock.Release())
	assert.Empty(t, lock.Address())
}

func TestLockPortIsDeterministic(t *testing.T) {
	assert.Equal(t, lockPort("idlewatch"), lockPort("idlewatch"))
	assert.GreaterOrEqual(t, lockPort("idlewatch"), 20000)
	assert.LessOrEqual(t, lockPort("idlewatch"), 39999)
}
