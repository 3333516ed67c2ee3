package kernel

import (
	"kalio/kernel/cpu"
	"kalio/kernel/kfmt/early"
)

var (
	// cpuHaltFn is a package variable so tests can replace it.
	cpuHaltFn = cpu.Halt

	errRuntimePanic = &Error{Module: "rt", Message: "unknown cause"}
	errAssertion    = &Error{Module: "rt", Message: "assertion failed"}
)

// Panic outputs the supplied error (if not nil) to the console and halts the
// CPU. Calls to Panic never return.
func Panic(e interface{}) {
	var err *Error

	switch t := e.(type) {
	case *Error:
		err = t
	case string:
		errRuntimePanic.Message = t
		err = errRuntimePanic
	case error:
		errRuntimePanic.Message = t.Error()
		err = errRuntimePanic
	}

	early.Printf("\n-----------------------------------\n")
	if err != nil {
		early.Printf("[%s] unrecoverable error: %s\n", err.Module, err.Message)
	}
	early.Printf("*** kernel panic: system halted ***")
	early.Printf("\n-----------------------------------\n")

	cpuHaltFn()
}

// Assert panics with errAssertion's message annotated by msg if cond is
// false. It is the Go-native stand-in for the original kernel's ASSERT
// macro, used throughout the heap and paging code to guard invariants that
// must never be violated by correct callers.
func Assert(cond bool, module, msg string) {
	if cond {
		return
	}

	errAssertion.Module = module
	errAssertion.Message = msg
	Panic(errAssertion)
}
