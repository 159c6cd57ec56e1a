package intern

import (
	"strings"
	"sync"
	"testing"
	"unsafe"
)

func sameBacking(a, b string) bool {
	return unsafe.StringData(a) == unsafe.StringData(b)
}

func size(si *StringInterner) int {
	si.mutex.RLock()
	defer si.mutex.RUnlock()
	return len(si.strings)
}

func TestStringInterner_Intern(t *testing.T) {
	interner := NewStringInterner(0)

	// Build two distinct allocations with equal content
	first := strings.Repeat("-", 2) + "name"
	second := strings.Repeat("-", 2) + "name"

	s1 := interner.Intern(first)
	s2 := interner.Intern(second)
	if !sameBacking(s1, s2) {
		t.Error("Expected interned strings to share storage")
	}

	if s3 := interner.Intern("--other"); s3 == s1 {
		t.Error("Expected different values for different strings")
	}
}

func TestStringInterner_PreIntern(t *testing.T) {
	interner := NewStringInterner(0)
	interner.PreIntern([]string{"--a", "--b", "--c"})

	if got := size(interner); got != 3 {
		t.Errorf("size = %d, want 3", got)
	}

	interner.Intern("--a")
	if got := size(interner); got != 3 {
		t.Errorf("re-interning must not grow the table, got %d", got)
	}
}

func TestGlobalInterner_CommonNames(t *testing.T) {
	for _, name := range CommonNames {
		if got := Intern(strings.Clone(name)); got != name {
			t.Errorf("Intern(%q) = %q", name, got)
		}
	}
}

func TestStringInterner_Concurrent(t *testing.T) {
	interner := NewStringInterner(4)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				interner.Intern("--shared")
			}
		}()
	}
	wg.Wait()

	if got := size(interner); got != 1 {
		t.Errorf("size = %d, want 1", got)
	}
}
