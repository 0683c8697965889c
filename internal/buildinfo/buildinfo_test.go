package buildinfo

import "testing"

func TestShortPrefersVersion(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	Version, Commit = "v1.2.0", "0123456789abcdef"
	if got := Short(); got != "v1.2.0" {
		t.Fatalf("expected v1.2.0, got %q", got)
	}
	Version = "dev"
	if got := Short(); got != "0123456789ab" {
		t.Fatalf("expected abbreviated commit, got %q", got)
	}
	attrs := Attrs()
	if len(attrs) != 4 || attrs[3] != "0123456789abcdef" {
		t.Fatalf("expected version and commit attrs, got %v", attrs)
	}
}
