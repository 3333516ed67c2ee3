package shell

import (
	"reflect"
	"testing"
)

func TestTokenizeSplitsOnWhitespace(t *testing.T) {
	got := tokenize("mkdir projects")
	want := []string{"mkdir", "projects"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizeKeepsQuotedSpanAsOneToken(t *testing.T) {
	got := tokenize(`write greeting "hello, kalio"`)
	want := []string{"write", "greeting", "hello, kalio"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizeCollapsesRepeatedSpaces(t *testing.T) {
	got := tokenize("ls   ")
	want := []string{"ls"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
