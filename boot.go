package main

import "kalio/kernel/kmain"

// cmdLine holds the boot command line. It is a package-level var rather
// than a local so the compiler cannot inline it away along with the call
// below; the rt0 assembly is free to patch it before jumping here if a
// future bootloader stage wants to pass one in. An empty string means every
// bootcfg default applies.
var cmdLine string

// main is the only Go symbol visible (exported) to the rt0 initialization
// code. It is a trampoline for the real kernel entrypoint, kmain.Kmain, and
// exists so the Go compiler cannot optimize away the kernel code it has no
// static knowledge the assembly bootstrap depends on.
//
// main is invoked by the rt0 assembly after it has set up the GDT and a
// minimal g0 struct giving Go code a usable stack. main is not expected to
// return; if it does, the rt0 code halts the CPU.
func main() {
	kmain.Kmain(cmdLine)
}
