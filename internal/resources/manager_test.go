package resources

import "testing"

func TestNewManagerAutoDetect(t *testing.T) {
	m := NewManager(Config{})
	if m.Size() < 1 {
		t.Fatalf("expected size >= 1, got %d", m.Size())
	}
}

func TestNewManagerOverride(t *testing.T) {
	m := NewManager(Config{MaxThreads: 3})
	if m.Size() != 3 {
		t.Fatalf("expected override size 3, got %d", m.Size())
	}
}
