package token

import (
	"testing"
)

func TestDigest_KnownVectors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{in: "abc", want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, tc := range cases {
		if got := Digest(tc.in); got != tc.want {
			t.Fatalf("Digest(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestDigest_DeterministicAndWellFormed(t *testing.T) {
	t.Parallel()

	inputs := []string{"good-token", "bad-token", "x", "päss wörd", string(make([]byte, 4096))}
	for _, in := range inputs {
		a := Digest(in)
		b := Digest(in)
		if a != b {
			t.Fatalf("Digest not deterministic for %q: %q vs %q", in, a, b)
		}
		if !isDigest(a) {
			t.Fatalf("Digest(%q)=%q is not %d lowercase hex chars", in, a, DigestLen)
		}
	}
}

func TestDigest_DistinctInputs(t *testing.T) {
	t.Parallel()

	if Digest("good-token") == Digest("bad-token") {
		t.Fatalf("expected distinct digests for distinct inputs")
	}
}

func TestIsDigestShape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want bool
	}{
		{name: "valid", in: Digest("a"), want: true},
		{name: "empty", in: "", want: false},
		{name: "short", in: "abc123", want: false},
		{name: "uppercase", in: "E3B0C44298FC1C149AFBF4C8996FB92427AE41E4649B934CA495991B7852B855", want: false},
		{name: "non hex", in: "z3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", want: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := isDigest(tc.in); got != tc.want {
				t.Fatalf("isDigest(%q)=%v want=%v", tc.in, got, tc.want)
			}
		})
	}
}
