package assets

import (
	"strings"
	"testing"
)

func TestEncodeAndGet(t *testing.T) {
	s := NewStore()

	ref, err := s.Encode([]byte("fake png bytes"), "image/png")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(ref, "/assets/") {
		t.Fatalf("ref = %q, want /assets/ prefix", ref)
	}

	id := strings.TrimPrefix(ref, "/assets/")
	a, ok := s.Get(id)
	if !ok {
		t.Fatal("asset not found after encode")
	}
	if a.ContentType != "image/png" {
		t.Errorf("content type = %q, want image/png", a.ContentType)
	}
	if string(a.Data) != "fake png bytes" {
		t.Errorf("data = %q", a.Data)
	}
}

func TestEncodeEmptyData(t *testing.T) {
	s := NewStore()

	if _, err := s.Encode(nil, "image/png"); err == nil {
		t.Error("expected error for empty data")
	}
}

func TestEncodeDefaultContentType(t *testing.T) {
	s := NewStore()

	ref, err := s.Encode([]byte("x"), "")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	a, _ := s.Get(strings.TrimPrefix(ref, "/assets/"))
	if a.ContentType != "image/png" {
		t.Errorf("content type = %q, want image/png default", a.ContentType)
	}
}

func TestGetUnknown(t *testing.T) {
	s := NewStore()

	if _, ok := s.Get("nope"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestRefsAreUnique(t *testing.T) {
	s := NewStore()

	a, _ := s.Encode([]byte("one"), "image/png")
	b, _ := s.Encode([]byte("two"), "image/png")
	if a == b {
		t.Errorf("refs collide: %q", a)
	}
}
