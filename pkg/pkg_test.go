package pkg

import (
	"os"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("read VERSION: %v", err)
	}

	if want := strings.TrimSpace(string(buf)); Version != want {
		t.Errorf("expected %q, got %q", want, Version)
	}

	if strings.ContainsAny(Version, " \n") {
		t.Errorf("version not trimmed: %q", Version)
	}
}

func TestIdentity(t *testing.T) {
	if Name != "twig" {
		t.Errorf("expected twig, got %q", Name)
	}

	if len(Author) == 0 {
		t.Error("expected at least one author")
	}
}
