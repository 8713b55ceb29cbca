package ids

import (
	"testing"
	"time"
)

func TestNewULID(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	a, err := NewULID(now)
	if err != nil {
		t.Fatalf("NewULID: %v", err)
	}
	b, err := NewULID(now.Add(time.Millisecond))
	if err != nil {
		t.Fatalf("NewULID: %v", err)
	}
	if len(a) != 26 || len(b) != 26 {
		t.Fatalf("expected 26-char ids, got %q and %q", a, b)
	}
	if a >= b {
		t.Fatalf("expected time ordering: %q should sort before %q", a, b)
	}
}

func TestIsULID(t *testing.T) {
	t.Parallel()

	id, err := NewULID(time.Time{})
	if err != nil {
		t.Fatalf("NewULID: %v", err)
	}

	cases := []struct {
		in   string
		want bool
	}{
		{in: id, want: true},
		{in: "", want: false},
		{in: "not-a-ulid", want: false},
		{in: "01HZZZZZZZZZZZZZZZZZZZZZZ!", want: false},
	}
	for _, tc := range cases {
		if got := IsULID(tc.in); got != tc.want {
			t.Fatalf("IsULID(%q)=%v want=%v", tc.in, got, tc.want)
		}
	}
}
