//go:build darwin && cgo

package idle

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation

#include <mach/mach.h>
#include <IOKit/IOKitLib.h>
#include <CoreFoundation/CoreFoundation.h>

static kern_return_t idlewatch_open(mach_port_t *port, io_registry_entry_t *entry) {
	kern_return_t result = IOMasterPort(MACH_PORT_NULL, port);
	if (result != KERN_SUCCESS) {
		return result;
	}
	*entry = IOServiceGetMatchingService(*port, IOServiceMatching("IOHIDSystem"));
	if (*entry == MACH_PORT_NULL) {
		return KERN_FAILURE;
	}
	return KERN_SUCCESS;
}

// Returns the raw HIDIdleTime counter, or -1 when the property is
// missing or has an unexpected type.
static int64_t idlewatch_read_raw(io_registry_entry_t entry) {
	CFTypeRef property = IORegistryEntryCreateCFProperty(entry, CFSTR("HIDIdleTime"), kCFAllocatorDefault, 0);
	if (property == NULL) {
		return -1;
	}

	int64_t raw = -1;
	if (CFGetTypeID(property) == CFNumberGetTypeID()) {
		CFNumberGetValue((CFNumberRef)property, kCFNumberSInt64Type, &raw);
	} else if (CFGetTypeID(property) == CFDataGetTypeID() && CFDataGetLength((CFDataRef)property) >= (CFIndex)sizeof(raw)) {
		CFDataGetBytes((CFDataRef)property, CFRangeMake(0, sizeof(raw)), (UInt8 *)&raw);
	}
	CFRelease(property);
	return raw;
}

static void idlewatch_close(mach_port_t port, io_registry_entry_t entry) {
	if (entry != MACH_PORT_NULL) {
		IOObjectRelease(entry);
	}
	if (port != MACH_PORT_NULL) {
		mach_port_deallocate(mach_task_self(), port);
	}
}
*/
import "C"

import (
	"fmt"
	"time"
)

// registrySampler reads HIDIdleTime straight from the IOHIDSystem node
// of the I/O Registry. It owns the Mach port and the registry entry and
// releases both on Close.
type registrySampler struct {
	machPort C.mach_port_t
	regEntry C.io_registry_entry_t
	unit     time.Duration
}

func newSampler(config Config) (Sampler, error) {
	var port C.mach_port_t
	var entry C.io_registry_entry_t
	if result := C.idlewatch_open(&port, &entry); result != C.KERN_SUCCESS {
		return nil, fmt.Errorf("open IOHIDSystem registry entry: kern_return 0x%x", uint32(result))
	}
	return &registrySampler{machPort: port, regEntry: entry, unit: config.RegistryUnit}, nil
}

func (sampler *registrySampler) Sample() (time.Duration, error) {
	raw := C.idlewatch_read_raw(sampler.regEntry)
	if raw < 0 {
		return 0, fmt.Errorf("HIDIdleTime property missing")
	}
	return time.Duration(raw) * sampler.unit, nil
}

func (sampler *registrySampler) Close() error {
	C.idlewatch_close(sampler.machPort, sampler.regEntry)
	sampler.machPort = 0
	sampler.regEntry = 0
	return nil
}
