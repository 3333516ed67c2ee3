package klist

import "testing"

func TestPushPopOrdering(t *testing.T) {
	var l List[int]

	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)

	if got := l.Len(); got != 3 {
		t.Fatalf("expected len 3, got %d", got)
	}

	if v, ok := l.PopFront(); !ok || v != 1 {
		t.Fatalf("expected (1, true), got (%v, %v)", v, ok)
	}

	if v, ok := l.PopBack(); !ok || v != 3 {
		t.Fatalf("expected (3, true), got (%v, %v)", v, ok)
	}

	if v, ok := l.PopFront(); !ok || v != 2 {
		t.Fatalf("expected (2, true), got (%v, %v)", v, ok)
	}

	if _, ok := l.PopFront(); ok {
		t.Fatal("expected empty list to report ok=false")
	}
}

func TestRemoveFunc(t *testing.T) {
	var l List[string]
	l.PushBack("a")
	l.PushBack("b")
	l.PushBack("c")

	if !l.RemoveFunc(func(s string) bool { return s == "b" }) {
		t.Fatal("expected to remove \"b\"")
	}

	var out []string
	l.Each(func(s string) bool {
		out = append(out, s)
		return true
	})

	if len(out) != 2 || out[0] != "a" || out[1] != "c" {
		t.Fatalf("unexpected remaining elements: %v", out)
	}

	if l.RemoveFunc(func(s string) bool { return s == "z" }) {
		t.Fatal("expected no match for absent element")
	}
}

func TestEachEarlyStop(t *testing.T) {
	var l List[int]
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)

	var seen int
	l.Each(func(v int) bool {
		seen++
		return v != 2
	})

	if seen != 2 {
		t.Fatalf("expected early stop after 2 elements, visited %d", seen)
	}
}
