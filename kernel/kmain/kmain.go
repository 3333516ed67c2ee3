// Package kmain is the kernel's single entry point: it drives a fixed,
// ordered sequence of subsystem initializers (mirroring the original
// kernel's _inits[] array exactly — this kernel boots one known hardware
// configuration, so there is no probing or multiboot handshake to drive the
// order dynamically instead) and then hands off to the interactive shell,
// which never returns.
package kmain

import (
	"kalio/kernel/bootcfg"
	"kalio/kernel/cpu"
	"kalio/kernel/driver/keyboard"
	"kalio/kernel/driver/vga"
	"kalio/kernel/goruntime"
	"kalio/kernel/heap"
	"kalio/kernel/irq"
	"kalio/kernel/kfmt"
	"kalio/kernel/mem"
	"kalio/kernel/paging"
	"kalio/kernel/shell"
	"kalio/kernel/timer"
	"kalio/kernel/vfs"
)

const (
	// kernelReservedBytes is carved out of low physical memory for the
	// bump-allocated page directory/tables built during Init, before the
	// frame allocator and Go heap exist.
	kernelReservedBytes = 1 << 20 // 1 MiB

	// identityMapBytes covers every physical address this kernel's own
	// code, stack and bump-allocated structures can touch before the
	// frame allocator takes over.
	identityMapBytes = 4 << 20 // 4 MiB

	// totalRAMBytes is the fixed amount of physical memory this kernel
	// assumes, in the absence of any bootloader-reported memory map.
	totalRAMBytes = 32 << 20 // 32 MiB

	goRuntimeVirtBase = 16 << 20
)

// Kmain runs the fixed boot sequence and then the shell loop. It never
// returns.
func Kmain(cmdline string) {
	cfg := bootcfg.Parse(cmdline)

	irq.Init()
	paging.Init()

	bump := mem.NewBumpAllocator(kernelReservedBytes, identityMapBytes)

	dir := paging.New(bump)
	dir.IdentityMap(identityMapBytes)
	dir.Activate()

	paging.InitFrames(identityMapBytes, totalRAMBytes)
	paging.InitVirtualRegion(goRuntimeVirtBase)
	goruntime.Init(dir)

	cpu.EnableInterrupts()

	vga.Init()

	palette := cfg.Palette
	if palette == "" {
		palette = "default"
	}
	vga.Default.SetPaletteByName(palette)

	bootLog := &kfmt.PrefixWriter{Sink: &vga.Default, Prefix: []byte("[boot] ")}
	kfmt.SetOutputSink(bootLog)

	pitHz := cfg.PITHz
	if pitHz == 0 {
		pitHz = 50
	}
	timer.Init(pitHz)
	kfmt.Printf("initialized PIT timer at %d Hz\n", pitHz)

	keyboard.Init()
	kfmt.Printf("initialized PS/2 keyboard\n")

	heap.SetFrameProvider(func() uintptr { return uintptr(paging.KMalloc()) })
	heap.Init()
	kfmt.Printf("initialized slab heap\n")

	root, home := vfs.NewRoot()
	kfmt.Printf("initialized in-memory filesystem\n")

	kfmt.SetOutputSink(&vga.Default)
	sh := shell.New(root, home, kfmt.Printf)
	sh.SetHaltFunc(cpu.Halt)

	kfmt.Printf("KalioOS ready.\n")

	runShellLoop(sh)
}

// runShellLoop drains translated keystrokes from the keyboard driver,
// assembling them into lines and feeding each completed line to the shell.
// There is no preemptive scheduler in this kernel, so this loop is the only
// thing running once boot completes; interrupts keep delivering keystrokes
// and timer ticks around it.
func runShellLoop(sh interface{ Run(string) }) {
	var line []rune
	for {
		r, ok := keyboard.ReadRune()
		if !ok {
			cpu.WaitForInterrupt()
			continue
		}

		switch r {
		case '\n':
			sh.Run(string(line))
			line = line[:0]
			kfmt.Printf("> ")
		case '\b':
			if len(line) > 0 {
				line = line[:len(line)-1]
			}
		default:
			line = append(line, r)
			kfmt.Printf("%s", string(r))
		}
	}
}
