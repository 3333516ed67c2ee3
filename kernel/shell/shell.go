// Package shell implements the kernel's line-oriented command shell: a
// quote-aware tokenizer (tokenize.go) feeding a fixed dispatch table of 13
// commands, each validated against a min/max argument count before running.
package shell

import "kalio/kernel/vfs"

// Shell holds the interactive state a running command operates against.
type Shell struct {
	root, cwd, prev *vfs.Node
	out             func(string, ...interface{})
	halt            func()
}

// New creates a shell rooted at root, starting in cwd, printing output
// through printf (normally kfmt.Printf).
func New(root, cwd *vfs.Node, printf func(string, ...interface{})) *Shell {
	return &Shell{root: root, cwd: cwd, prev: cwd, out: printf}
}

// SetHaltFunc wires the handler for the "exit" command. kmain wires this to
// cpu.Halt; left nil, "exit" is a no-op (as in the host test shells).
func (s *Shell) SetHaltFunc(halt func()) {
	s.halt = halt
}

// command describes one dispatch table entry: its handler and the
// inclusive [min, max] number of arguments it accepts (excluding the
// command name itself). max of -1 means unbounded.
type command struct {
	help    string
	minArgs int
	maxArgs int
	run     func(s *Shell, args []string)
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"whoami": {"print the current user", 0, 0, cmdWhoami},
		"pwd":    {"print the current directory", 0, 0, cmdPwd},
		"ls":     {"list the current directory's contents", 0, 0, cmdLs},
		"cd":     {"change the current directory", 1, 1, cmdCd},
		"mkdir":  {"create a directory", 1, 1, cmdMkdir},
		"touch":  {"create an empty file", 1, 1, cmdTouch},
		"rmdir":  {"remove an empty directory", 1, 1, cmdRmdir},
		"rm":     {"remove a file", 1, 1, cmdRm},
		"write":  {"write <file> <contents>: overwrite a file's contents", 2, 2, cmdWrite},
		"cat":    {"print a file's contents", 1, 1, cmdCat},
		"echo":   {"print the given arguments", 0, -1, cmdEcho},
		"clear":  {"clear the screen", 0, 0, cmdClear},
		"exit":   {"halt the machine", 0, 0, cmdExit},
	}
}

// Run tokenizes and dispatches a single input line. Unknown commands and
// argument-count mismatches print a diagnostic rather than panicking; a
// malformed shell line must never be fatal.
func (s *Shell) Run(line string) {
	args := tokenize(line)
	if len(args) == 0 {
		return
	}

	cmd, ok := commands[args[0]]
	if !ok {
		s.out("%s: command not found\n", args[0])
		return
	}

	rest := args[1:]
	if len(rest) < cmd.minArgs || (cmd.maxArgs >= 0 && len(rest) > cmd.maxArgs) {
		s.out("%s: wrong number of arguments\n", args[0])
		return
	}

	cmd.run(s, rest)
}
