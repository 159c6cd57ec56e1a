// Package intern provides string interning for notation names.
// Commands and options are frequently declared with the same names
// (`--help`, `-v`, `--output`), so every notation stores a canonical copy.
package intern

import (
	"sync"
)

// StringInterner provides thread-safe string interning
type StringInterner struct {
	strings map[string]string
	mutex   sync.RWMutex
}

// NewStringInterner creates a new string interner with optional pre-allocated capacity
func NewStringInterner(capacity int) *StringInterner {
	if capacity <= 0 {
		capacity = 64
	}
	return &StringInterner{
		strings: make(map[string]string, capacity),
	}
}

// Intern returns the canonical version of s
func (si *StringInterner) Intern(s string) string {
	si.mutex.RLock()
	if interned, exists := si.strings[s]; exists {
		si.mutex.RUnlock()
		return interned
	}
	si.mutex.RUnlock()

	si.mutex.Lock()
	defer si.mutex.Unlock()

	// Double-check after acquiring write lock
	if interned, exists := si.strings[s]; exists {
		return interned
	}
	si.strings[s] = s
	return s
}

// PreIntern adds names ahead of declaration time
func (si *StringInterner) PreIntern(names []string) {
	si.mutex.Lock()
	defer si.mutex.Unlock()

	for _, s := range names {
		si.strings[s] = s
	}
}

// CommonNames contains notation names that nearly every tree declares
var CommonNames = []string{
	"--help", "-h", "--version", "-v", "--verbose", "--quiet", "-q",
	"--config", "-c", "--output", "-o", "--input", "-i", "--force", "-f",
	"--debug", "-d", "--name", "-n",
}

// GlobalInterner is the process-wide interner used by notations.
var GlobalInterner *StringInterner

//nolint:gochecknoinits // Global interner requires init for pre-interning
func init() {
	GlobalInterner = NewStringInterner(128)
	GlobalInterner.PreIntern(CommonNames)
}

// Intern interns a string using the global interner
func Intern(s string) string {
	return GlobalInterner.Intern(s)
}
