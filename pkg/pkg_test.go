package pkg

import "testing"

func TestVersionEmbedded(t *testing.T) {
	if Version == "" {
		t.Fatal("Version must not be empty")
	}
}

func TestName(t *testing.T) {
	if Name == "" {
		t.Fatal("Name must not be empty")
	}
}
