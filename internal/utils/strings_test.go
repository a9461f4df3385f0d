package utils

import "testing"

func TestSafeFilenamePart(t *testing.T) {
	cases := map[string]string{
		"Ravi  Kumar":       "Ravi_Kumar",
		"  ":                "NA",
		"a/b:c":             "a_b_c",
		"Sri Venkateswara Ramakrishnan Subramaniam": "Sri_Venkateswara_Ramakrishnan_Subramania",
	}
	for in, want := range cases {
		if got := SafeFilenamePart(in); got != want {
			t.Fatalf("SafeFilenamePart(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSafe(t *testing.T) {
	if Safe(" ", "-") != "-" || Safe(" x ", "-") != "x" {
		t.Fatalf("Safe fallback broken")
	}
}
