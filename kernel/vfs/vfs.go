// Package vfs implements the kernel's in-memory file tree: directories and
// files live only in RAM, created fresh on every boot, with each operation
// (open/close/read/write/ls/find) dispatched the way the original kernel's
// node vtable dispatched them, just expressed as Go methods instead of a
// function-pointer struct.
package vfs

import (
	"kalio/kernel"
	"kalio/kernel/heap"
)

const (
	// defaultBufSize matches the original kernel's DEFAULT_BUF_SIZE, the
	// scratch buffer size the "cat" shell command reads into.
	defaultBufSize = 64
)

var (
	errNotFound    = &kernel.Error{Module: "vfs", Message: "not found"}
	errExists      = &kernel.Error{Module: "vfs", Message: "already exists"}
	errNotDir      = &kernel.Error{Module: "vfs", Message: "not a directory"}
	errNotFile     = &kernel.Error{Module: "vfs", Message: "not a file"}
	errDirNotEmpty = &kernel.Error{Module: "vfs", Message: "directory not empty"}
	errNoSpace     = &kernel.Error{Module: "vfs", Message: "no space left"}
)

// Node is either a directory (Children populated, no data buffer) or a file
// (heap-backed buffer in dataAddr/dataCap once written, Children nil). User/Group are fixed strings, matching the
// single-user model the original shell's "ls" output assumes.
//
// A file's contents live in a chunk pulled from the kernel slab heap
// (package heap), not a plain Go slice: this is the original kernel's own
// storage for a node's buffer, and growing it by doubling through
// heap.KMallocHeap/KFreeHeap is what makes the slab heap's tub/bundle
// machinery a real allocation path instead of a subsystem nothing calls.
type Node struct {
	Name     string
	IsDir    bool
	User     string
	Group    string
	Parent   *Node
	Children []*Node

	dataAddr uintptr
	dataCap  int
	size     int
}

const (
	defaultUser  = "pbagur"
	defaultGroup = "adm"
)

// NewRoot creates the root directory with the five preset subdirectories the
// original kernel always boots with: scratch, var, bin, log, home, plus
// /home/pbagur as the kernel's initial working directory (returned
// separately since callers need it as the shell's starting cwd).
func NewRoot() (root, home *Node) {
	root = newDir("/", nil)
	for _, name := range []string{"scratch", "var", "bin", "log"} {
		mkdirNoCheck(root, name)
	}
	homeRoot := mkdirNoCheck(root, "home")
	home = mkdirNoCheck(homeRoot, "pbagur")
	return root, home
}

func newDir(name string, parent *Node) *Node {
	return &Node{Name: name, IsDir: true, User: defaultUser, Group: defaultGroup, Parent: parent}
}

func newFile(name string, parent *Node) *Node {
	return &Node{Name: name, IsDir: false, User: defaultUser, Group: defaultGroup, Parent: parent}
}

func mkdirNoCheck(parent *Node, name string) *Node {
	n := newDir(name, parent)
	parent.Children = append(parent.Children, n)
	return n
}

// Find looks up name among dir's immediate children.
func Find(dir *Node, name string) (*Node, bool) {
	for _, c := range dir.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Ls returns dir's immediate children.
func Ls(dir *Node) []*Node {
	return dir.Children
}

// Mkdir creates a subdirectory of dir. It returns errExists (rather than
// failing the caller's whole command) if name is already taken, matching
// the original shell's "already exists, skip" behavior.
func Mkdir(dir *Node, name string) (*Node, *kernel.Error) {
	if _, ok := Find(dir, name); ok {
		return nil, errExists
	}
	n := newDir(name, dir)
	dir.Children = append(dir.Children, n)
	return n, nil
}

// Touch creates an empty file in dir, or returns errExists if name is taken.
func Touch(dir *Node, name string) (*Node, *kernel.Error) {
	if _, ok := Find(dir, name); ok {
		return nil, errExists
	}
	n := newFile(name, dir)
	dir.Children = append(dir.Children, n)
	return n, nil
}

// Rmdir removes an empty subdirectory named name from dir.
func Rmdir(dir *Node, name string) *kernel.Error {
	n, ok := Find(dir, name)
	if !ok {
		return errNotFound
	}
	if !n.IsDir {
		return errNotDir
	}
	if len(n.Children) > 0 {
		return errDirNotEmpty
	}
	removeChild(dir, n)
	return nil
}

// Rm removes a file named name from dir, releasing its heap-backed buffer
// if it was ever written to.
func Rm(dir *Node, name string) *kernel.Error {
	n, ok := Find(dir, name)
	if !ok {
		return errNotFound
	}
	if n.IsDir {
		return errNotFile
	}
	if n.dataAddr != 0 {
		heap.KFreeHeap(n.dataAddr)
	}
	removeChild(dir, n)
	return nil
}

func removeChild(dir, child *Node) {
	for i, c := range dir.Children {
		if c == child {
			dir.Children = append(dir.Children[:i], dir.Children[i+1:]...)
			return
		}
	}
}

// Open returns a Handle for reading/writing n's contents. There is no
// reference counting in this single-tasking kernel; Close exists only to
// mirror the original kernel's symmetrical open/close pair.
func Open(n *Node) *Handle {
	return &Handle{node: n}
}

// Handle is an open file handle.
type Handle struct {
	node *Node
}

// Close releases the handle. It never fails.
func (h *Handle) Close() {}

// Write copies src into the file starting at offset, growing the backing
// buffer (by doubling, amortizing repeated small writes) if needed. It
// returns errNoSpace, without writing anything, if the grown buffer plus the
// heap's 8-byte chunk header would not fit the heap's largest size class
// (4096 bytes), so any write taking the file past 2048 bytes fails, or the
// heap has no
// bundle left to serve the request — both are the "recoverable null
// return" failure mode package heap itself reports, propagated here rather
// than panicking the kernel over a file that simply got too large.
func (h *Handle) Write(offset int, src []byte) *kernel.Error {
	need := offset + len(src)
	if need > h.node.dataCap {
		grown := h.node.dataCap
		if grown == 0 {
			grown = defaultBufSize
		}
		for grown < need {
			grown *= 2
		}

		newAddr, ok := heap.KMallocHeap(uint32(grown))
		if !ok {
			return errNoSpace
		}
		if h.node.dataAddr != 0 {
			copy(heap.Bytes(newAddr, grown), heap.Bytes(h.node.dataAddr, h.node.dataCap))
			heap.KFreeHeap(h.node.dataAddr)
		}
		h.node.dataAddr = newAddr
		h.node.dataCap = grown
	}

	copy(heap.Bytes(h.node.dataAddr, h.node.dataCap)[offset:], src)
	if need > h.node.size {
		h.node.size = need
	}
	return nil
}

// Read copies up to len(dst) bytes starting at offset into dst, returning
// the number of bytes actually copied (0 at or past end-of-file).
func (h *Handle) Read(offset int, dst []byte) int {
	if offset >= h.node.size {
		return 0
	}
	n := copy(dst, heap.Bytes(h.node.dataAddr, h.node.dataCap)[offset:h.node.size])
	return n
}

// Size returns the file's current content length.
func (h *Handle) Size() int {
	return h.node.size
}
