package shell

import "kalio/kernel/vfs"

func cmdWhoami(s *Shell, args []string) {
	s.out("pbagur\n")
}

// cmdPwd prints the absolute path of the current directory by walking
// parent pointers up to the root and printing the segments in order.
func cmdPwd(s *Shell, args []string) {
	var segments []string
	for n := s.cwd; n.Parent != nil; n = n.Parent {
		segments = append([]string{n.Name}, segments...)
	}

	s.out("/")
	for i, seg := range segments {
		if i > 0 {
			s.out("/")
		}
		s.out("%s", seg)
	}
	s.out("\n")
}

// cmdLs prints one line per child of the current directory, formatted
// "<kind>   <user>/<group>   <name>" the way the original shell's ls did.
func cmdLs(s *Shell, args []string) {
	for _, c := range vfs.Ls(s.cwd) {
		kind := "file"
		if c.IsDir {
			kind = "dir"
		}
		s.out("%s   %s/%s   %s\n", kind, c.User, c.Group, c.Name)
	}
}

// cmdCd changes the current directory. "." is a no-op, ".." ascends via the
// parent pointer (refusing to go above the root), "-" swaps the current and
// previous directory, and anything else looks up a named child.
func cmdCd(s *Shell, args []string) {
	target := args[0]

	switch target {
	case ".":
		return
	case "..":
		if s.cwd.Parent == nil {
			s.out("already at the root\n")
			return
		}
		s.prev, s.cwd = s.cwd, s.cwd.Parent
		return
	case "-":
		s.cwd, s.prev = s.prev, s.cwd
		return
	}

	n, ok := vfs.Find(s.cwd, target)
	if !ok || !n.IsDir {
		s.out("%s: not found\n", target)
		return
	}
	s.prev, s.cwd = s.cwd, n
}

func cmdMkdir(s *Shell, args []string) {
	name := args[0]
	if _, err := vfs.Mkdir(s.cwd, name); err != nil {
		s.out("%s already exists\n", name)
	}
}

func cmdTouch(s *Shell, args []string) {
	name := args[0]
	if _, err := vfs.Touch(s.cwd, name); err != nil {
		s.out("%s already exists\n", name)
	}
}

func cmdRmdir(s *Shell, args []string) {
	name := args[0]
	if err := vfs.Rmdir(s.cwd, name); err != nil {
		s.out("%s %s\n", name, err.Message)
	}
}

func cmdRm(s *Shell, args []string) {
	name := args[0]
	if err := vfs.Rm(s.cwd, name); err != nil {
		s.out("%s %s\n", name, err.Message)
	}
}

func cmdWrite(s *Shell, args []string) {
	name, contents := args[0], args[1]
	n, ok := vfs.Find(s.cwd, name)
	if !ok || n.IsDir {
		s.out("%s not found\n", name)
		return
	}
	h := vfs.Open(n)
	err := h.Write(0, []byte(contents))
	h.Close()
	if err != nil {
		s.out("%s: %s\n", name, err.Message)
	}
}

func cmdCat(s *Shell, args []string) {
	name := args[0]
	n, ok := vfs.Find(s.cwd, name)
	if !ok || n.IsDir {
		s.out("%s not found\n", name)
		return
	}

	h := vfs.Open(n)
	buf := make([]byte, 64)
	got := h.Read(0, buf)
	h.Close()

	s.out("%s\n", string(buf[:got]))
}

func cmdEcho(s *Shell, args []string) {
	for i, a := range args {
		if i > 0 {
			s.out(" ")
		}
		s.out("%s", a)
	}
	s.out("\n")
}

func cmdClear(s *Shell, args []string) {
	s.out("\x0c")
}

// cmdExit halts the machine. There is no host process to return control to,
// so "exit" is a dead end rather than a return: it calls the shell's halt
// hook if one was wired up (kmain wires cpu.Halt; tests leave it nil and get
// a no-op).
func cmdExit(s *Shell, args []string) {
	if s.halt != nil {
		s.halt()
	}
}
