package cmdtree

// sharedCell is the storage every handle of one Shared value points to
type sharedCell[T any] struct {
	value    T
	count    int64
	released bool
	release  func(*T)
}

// Shared is a reference-counted handle. Several handles may point at the same
// value; the value is released exactly once, when the last handle is cleaned.
// Handles are not safe for concurrent use.
//
// Options use it to share one Notation between the caller's declaration and
// the copy stored inside a Command.
type Shared[T any] struct {
	cell *sharedCell[T]
}

// NewShared allocates zeroed storage with a use count of 1
func NewShared[T any]() *Shared[T] {
	return &Shared[T]{cell: &sharedCell[T]{count: 1}}
}

// NewSharedUnused allocates zeroed storage with a use count of 0.
// The first real owner takes it with Claim.
func NewSharedUnused[T any]() *Shared[T] {
	return &Shared[T]{cell: &sharedCell[T]{}}
}

// WithRelease sets a hook run once when the storage is released
func (s *Shared[T]) WithRelease(fn func(*T)) *Shared[T] {
	if s.attached() {
		s.cell.release = fn
	}
	return s
}

func (s *Shared[T]) attached() bool {
	return s != nil && s.cell != nil && !s.cell.released
}

// CopyInto makes dest a second handle to src's storage and increments the
// shared use count. A dest already attached elsewhere is cleaned first.
func CopyInto[T any](dest, src *Shared[T]) error {
	if dest == nil {
		return invalidArgument("copy destination is nil")
	}
	if !src.attached() {
		return NewParseError(ErrorTypeInternal, ErrReleased, "copy source has no live storage")
	}
	if dest.cell == src.cell {
		return nil
	}
	dest.Clean()
	dest.cell = src.cell
	src.cell.count++
	return nil
}

// Claim increments the use count of live storage
func (s *Shared[T]) Claim() error {
	if !s.attached() {
		return NewParseError(ErrorTypeInternal, ErrReleased, "claim on released storage")
	}
	s.cell.count++
	return nil
}

// Clean drops this handle. The storage is released when the count reaches
// zero. Cleaning a detached handle does nothing.
func (s *Shared[T]) Clean() {
	if !s.attached() {
		if s != nil {
			s.cell = nil
		}
		return
	}
	cell := s.cell
	s.cell = nil

	cell.count--
	if cell.count > 0 {
		return
	}
	cell.released = true
	if cell.release != nil {
		cell.release(&cell.value)
	}
	var zero T
	cell.value = zero
}

// Put overwrites the shared value
func (s *Shared[T]) Put(v T) error {
	if !s.attached() {
		return NewParseError(ErrorTypeInternal, ErrReleased, "put on released storage")
	}
	s.cell.value = v
	return nil
}

// Read returns the shared value, or false when no owner holds it
func (s *Shared[T]) Read() (*T, bool) {
	if !s.attached() || s.cell.count <= 0 {
		return nil, false
	}
	return &s.cell.value, true
}

// UseCount returns the number of live handles, 0 once released
func (s *Shared[T]) UseCount() int64 {
	if !s.attached() {
		return 0
	}
	return s.cell.count
}
