package ring

import "testing"

func TestFIFOOrder(t *testing.T) {
	b := New[byte](3)

	if !b.Push('a') || !b.Push('b') || !b.Push('c') {
		t.Fatal("expected three pushes to succeed")
	}

	if !b.Full() {
		t.Fatal("expected buffer to report full")
	}

	if b.Push('d') {
		t.Fatal("expected push into full buffer to fail")
	}

	for _, want := range []byte{'a', 'b', 'c'} {
		got, ok := b.Pop()
		if !ok || got != want {
			t.Fatalf("expected (%c, true), got (%c, %v)", want, got, ok)
		}
	}

	if !b.Empty() {
		t.Fatal("expected buffer to report empty")
	}

	if _, ok := b.Pop(); ok {
		t.Fatal("expected pop from empty buffer to fail")
	}
}

func TestWrapAround(t *testing.T) {
	b := New[int](2)
	b.Push(1)
	b.Push(2)
	b.Pop()
	b.Push(3)

	v, ok := b.Pop()
	if !ok || v != 2 {
		t.Fatalf("expected (2, true), got (%v, %v)", v, ok)
	}
	v, ok = b.Pop()
	if !ok || v != 3 {
		t.Fatalf("expected (3, true), got (%v, %v)", v, ok)
	}
}
