package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another daemon instance holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceLock holds the single-instance lock for the daemon. The lock
// is a deterministic localhost port derived from the app name, so a
// second instance fails to bind and exits early.
type InstanceLock struct {
	listener net.Listener
	address  string
}

// AcquireInstanceLock attempts to take the process-wide lock.
func AcquireInstanceLock(appName string) (*InstanceLock, error) {
	address := fmt.Sprintf("127.0.0.1:%d", lockPort(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &InstanceLock{listener: listener, address: address}, nil
}

// Release frees the lock. Safe to call on a nil lock.
func (lock *InstanceLock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	return lock.listener.Close()
}

// Address returns the bound lock address.
func (lock *InstanceLock) Address() string {
	if lock == nil {
		return ""
	}
	return lock.address
}

func lockPort(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	return minPort + int(hash.Sum32()%uint32(maxPort-minPort+1))
}
