package idle

// idleMillisFromTicks derives idle milliseconds from the current tick
// counter and the 32-bit tick recorded at the last input event.
// GetLastInputInfo reports only the low 32 bits, so the subtraction
// must stay in 32 bits: once uptime passes the 32-bit millisecond
// range (~49.7 days) the wrapped values still cancel out.
func idleMillisFromTicks(tick uint64, lastInput uint32) uint64 {
	return uint64(uint32(tick) - lastInput)
}
