//nolint:testpackage // package-internal tests
package cmdtree

import (
	"errors"
	"testing"
)

func TestShared_CopyIntoIncrementsBoth(t *testing.T) {
	releases := 0
	src := NewShared[int]().WithRelease(func(*int) { releases++ })
	if err := src.Put(7); err != nil {
		t.Fatal(err)
	}

	before := src.UseCount()
	dest := &Shared[int]{}
	if err := CopyInto(dest, src); err != nil {
		t.Fatalf("CopyInto: %v", err)
	}
	if src.UseCount() != before+1 || dest.UseCount() != before+1 {
		t.Fatalf("counts = %d/%d, want %d", src.UseCount(), dest.UseCount(), before+1)
	}
	if v, ok := dest.Read(); !ok || *v != 7 {
		t.Fatalf("dest.Read() = %v, %v", v, ok)
	}

	src.Clean()
	if releases != 0 {
		t.Fatal("released while a handle is still live")
	}
	if v, ok := dest.Read(); !ok || *v != 7 {
		t.Fatalf("value lost after first clean: %v, %v", v, ok)
	}

	dest.Clean()
	dest.Clean()
	src.Clean()
	if releases != 1 {
		t.Fatalf("releases = %d, want exactly 1", releases)
	}
}

func TestShared_ReadAfterRelease(t *testing.T) {
	s := NewShared[string]()
	if err := s.Put("x"); err != nil {
		t.Fatal(err)
	}
	s.Clean()

	if _, ok := s.Read(); ok {
		t.Error("Read on released handle must report absence")
	}
	if s.UseCount() != 0 {
		t.Errorf("UseCount = %d, want 0", s.UseCount())
	}
	if err := s.Put("y"); !errors.Is(err, ErrReleased) {
		t.Errorf("Put after release: %v", err)
	}
	if err := CopyInto(&Shared[string]{}, s); !errors.Is(err, ErrReleased) {
		t.Errorf("CopyInto from released: %v", err)
	}
}

func TestShared_Unused(t *testing.T) {
	s := NewSharedUnused[int]()
	if _, ok := s.Read(); ok {
		t.Fatal("unused storage must not be readable before a claim")
	}
	if err := s.Claim(); err != nil {
		t.Fatal(err)
	}
	if s.UseCount() != 1 {
		t.Fatalf("UseCount = %d, want 1", s.UseCount())
	}
	if _, ok := s.Read(); !ok {
		t.Fatal("claimed storage must be readable")
	}
	s.Clean()
	if err := s.Claim(); !errors.Is(err, ErrReleased) {
		t.Errorf("Claim after release: %v", err)
	}
}

func TestShared_CopyIntoReplacesDestination(t *testing.T) {
	releasedOld := false
	old := NewShared[int]().WithRelease(func(*int) { releasedOld = true })
	src := NewShared[int]()

	if err := CopyInto(old, src); err != nil {
		t.Fatal(err)
	}
	if !releasedOld {
		t.Error("destination's previous storage should be released")
	}
	if src.UseCount() != 2 {
		t.Errorf("UseCount = %d, want 2", src.UseCount())
	}
	if err := CopyInto(old, src); err != nil || src.UseCount() != 2 {
		t.Errorf("copy onto the same storage must be a no-op, count %d err %v", src.UseCount(), err)
	}
	if err := CopyInto(nil, src); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil dest: %v", err)
	}
}
