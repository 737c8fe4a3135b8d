package plan

import "testing"

func TestCommonPrefix_Basic(t *testing.T) {
	pairs := []RenamePair{{Orig: "/data/2024/a.txt"}, {Orig: "/data/2024/b.txt"}, {Orig: "/data/2023/c.txt"}}
	if got, want := commonPrefix(pairs), "/data/202"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCommonPrefix_NoSharedPrefix(t *testing.T) {
	pairs := []RenamePair{{Orig: "a"}, {Orig: "b"}}
	if got := commonPrefix(pairs); got != "" {
		t.Fatalf("expected empty prefix, got %q", got)
	}
}

func TestCommonPrefix_Empty(t *testing.T) {
	if got := commonPrefix(nil); got != "" {
		t.Fatalf("expected empty prefix for no pairs, got %q", got)
	}
}
