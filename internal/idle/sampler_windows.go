//go:build windows

package idle

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

// inputSampler derives idle time from the last input tick reported by
// user32.
type inputSampler struct {
	getLastInputInfo *syscall.LazyProc
	getTickCount64   *syscall.LazyProc
}

func newSampler(config Config) (Sampler, error) {
	user32 := syscall.NewLazyDLL("user32.dll")
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	return &inputSampler{
		getLastInputInfo: user32.NewProc("GetLastInputInfo"),
		getTickCount64:   kernel32.NewProc("GetTickCount64"),
	}, nil
}

func (sampler *inputSampler) Sample() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}

	result, _, err := sampler.getLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		if err != nil {
			return 0, fmt.Errorf("get last input info: %w", err)
		}
		return 0, fmt.Errorf("get last input info: unknown error")
	}

	tickResult, _, tickErr := sampler.getTickCount64.Call()
	if tickResult == 0 && tickErr != nil {
		return 0, fmt.Errorf("get tick count: %w", tickErr)
	}

	idleMillis := idleMillisFromTicks(uint64(tickResult), info.dwTime)
	return time.Duration(idleMillis) * time.Millisecond, nil
}

func (sampler *inputSampler) Close() error {
	return nil
}
