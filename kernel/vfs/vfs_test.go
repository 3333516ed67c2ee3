package vfs

import (
	"testing"
	"unsafe"

	"kalio/kernel/heap"
)

// setupHeap wires the slab heap package up to a host byte slice standing in
// for physical frames, since Handle.Write/Read now allocate a file's buffer
// through heap.KMallocHeap rather than a plain Go slice.
func setupHeap(t *testing.T) {
	t.Helper()
	const pages = 64
	buf := make([]byte, pages*4096+4096)
	base := (uintptr(unsafe.Pointer(&buf[0])) + 4095) &^ 4095
	next := base
	heap.SetFrameProvider(func() uintptr {
		addr := next
		next += 4096
		return addr
	})
	heap.Init()
}

func TestNewRootPresetLayout(t *testing.T) {
	root, home := NewRoot()

	for _, name := range []string{"scratch", "var", "bin", "log", "home"} {
		if _, ok := Find(root, name); !ok {
			t.Fatalf("expected preset directory %q under root", name)
		}
	}

	if home.Name != "pbagur" || home.Parent.Name != "home" {
		t.Fatalf("expected home to be /home/pbagur, got %q under %q", home.Name, home.Parent.Name)
	}
}

func TestMkdirRejectsDuplicate(t *testing.T) {
	root, _ := NewRoot()

	if _, err := Mkdir(root, "projects"); err != nil {
		t.Fatalf("unexpected error creating projects: %v", err)
	}
	if _, err := Mkdir(root, "projects"); err != errExists {
		t.Fatalf("expected errExists on duplicate mkdir, got %v", err)
	}
}

func TestRmdirRefusesNonDirAndNonEmpty(t *testing.T) {
	root, _ := NewRoot()
	Touch(root, "note.txt")

	if err := Rmdir(root, "note.txt"); err != errNotDir {
		t.Fatalf("expected errNotDir for rmdir on a file, got %v", err)
	}

	Mkdir(root, "full")
	full, _ := Find(root, "full")
	Touch(full, "child")

	if err := Rmdir(root, "full"); err != errDirNotEmpty {
		t.Fatalf("expected errDirNotEmpty, got %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	setupHeap(t)
	root, _ := NewRoot()
	Touch(root, "greeting")
	n, _ := Find(root, "greeting")

	h := Open(n)
	if err := h.Write(0, []byte("hello, kalio")); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	buf := make([]byte, defaultBufSize)
	got := h.Read(0, buf)
	h.Close()

	if string(buf[:got]) != "hello, kalio" {
		t.Fatalf("expected round-tripped content, got %q", buf[:got])
	}
}

func TestWriteGrowsBufferByDoubling(t *testing.T) {
	setupHeap(t)
	root, _ := NewRoot()
	Touch(root, "big")
	n, _ := Find(root, "big")

	h := Open(n)
	payload := make([]byte, defaultBufSize+1)
	for i := range payload {
		payload[i] = 'x'
	}
	if err := h.Write(0, payload); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	if h.Size() != len(payload) {
		t.Fatalf("expected size %d, got %d", len(payload), h.Size())
	}
	if n.dataCap != 2*defaultBufSize {
		t.Fatalf("expected buffer to double to %d bytes, got %d", 2*defaultBufSize, n.dataCap)
	}
}

func TestRmFreesHeapBuffer(t *testing.T) {
	setupHeap(t)
	root, _ := NewRoot()
	Touch(root, "throwaway")
	n, _ := Find(root, "throwaway")

	h := Open(n)
	if err := h.Write(0, []byte("bye")); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	h.Close()

	if err := Rm(root, "throwaway"); err != nil {
		t.Fatalf("unexpected rm error: %v", err)
	}
}

func TestWriteOversizeFileReturnsError(t *testing.T) {
	setupHeap(t)
	root, _ := NewRoot()
	Touch(root, "huge")
	n, _ := Find(root, "huge")

	h := Open(n)
	payload := make([]byte, 5000) // past the heap's largest 4096-byte class
	if err := h.Write(0, payload); err == nil {
		t.Fatal("expected an error writing a file past the heap's largest size class")
	}
}
