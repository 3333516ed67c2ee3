// Command simshell drives an in-process copy of the kernel's shell
// dispatcher from a real terminal, standing in for "boot on a VM and type
// at the simulated PS/2 input stream" when no VM is available: it puts the
// calling terminal into raw mode, translates each keystroke to a scancode
// through package keyboard's reverse lookup table, injects it into the same
// ring buffer the keyboard IRQ handler would have used and reads it back
// through keyboard.ReadRune (discarding the translation), and runs the line
// assembled from the terminal's own runes through package shell.
//
// Because it links directly against kernel/driver/keyboard, which pulls in
// the asm-backed kernel/cpu primitives, this command must be built with
// GOARCH=386 alongside the kernel rather than for the host's native
// architecture.
package main

import (
	"bufio"
	"fmt"
	"os"

	"kalio/kernel/driver/keyboard"
	"kalio/kernel/shell"
	"kalio/kernel/vfs"

	"golang.org/x/term"
)

func main() {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "simshell: failed to enter raw mode:", err)
		os.Exit(1)
	}
	defer term.Restore(fd, oldState)

	root, home := vfs.NewRoot()
	sh := shell.New(root, home, func(format string, args ...interface{}) {
		fmt.Fprintf(os.Stdout, crlf(format), args...)
	})

	reader := bufio.NewReader(os.Stdin)
	var line []rune

	fmt.Fprint(os.Stdout, "> ")
	for {
		r, _, err := reader.ReadRune()
		if err != nil {
			return
		}

		if sc, ok := keyboard.ScancodeForRune(r); ok {
			keyboard.Inject(sc)
			keyboard.ReadRune() // drain it back off; simshell only needs the echo/dispatch behavior, not the queue
		}

		switch r {
		case '\r', '\n':
			fmt.Fprint(os.Stdout, "\r\n")
			sh.Run(string(line))
			line = line[:0]
			fmt.Fprint(os.Stdout, "> ")
		case 0x7f, '\b':
			if len(line) > 0 {
				line = line[:len(line)-1]
				fmt.Fprint(os.Stdout, "\b \b")
			}
		case 3: // Ctrl-C
			fmt.Fprint(os.Stdout, "\r\n")
			return
		default:
			line = append(line, r)
			fmt.Fprintf(os.Stdout, "%c", r)
		}
	}
}

// crlf rewrites bare '\n' in format strings coming from shell output into
// "\r\n" so lines stay left-aligned in raw terminal mode.
func crlf(format string) string {
	out := make([]byte, 0, len(format)+4)
	for i := 0; i < len(format); i++ {
		if format[i] == '\n' {
			out = append(out, '\r', '\n')
			continue
		}
		out = append(out, format[i])
	}
	return string(out)
}
