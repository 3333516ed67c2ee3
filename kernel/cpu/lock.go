package cpu

// LockIntr is the kernel's only synchronization primitive: save the current
// interrupt flag and disable interrupts, creating a critical section that
// cannot be preempted by an ISR. There is no SMP support and no preemptive
// task switch, so this alone is sufficient to protect shared kernel state.
// The returned token must be passed to UnlockIntr to leave the section.
func LockIntr() uint32 {
	flags := Flags()
	DisableInterrupts()
	return flags
}

// UnlockIntr restores the interrupt flag captured by a matching LockIntr
// call, re-enabling interrupts only if they were enabled before the section
// was entered (so nested LockIntr/UnlockIntr pairs don't re-enable
// interrupts prematurely).
func UnlockIntr(saved uint32) {
	RestoreFlags(saved)
}
