package textpage

import "sync/atomic"

// FontRef is a reference-counted handle to an interned FontInfo. A font is
// released when its last referring word is destroyed (DESIGN NOTES §9).
type FontRef struct {
	entry *fontEntry
}

type fontEntry struct {
	info     FontInfo
	refCount int32
}

// FontRegistry interns FontInfo values by name so word font-identity
// comparisons are pointer comparisons and so reference counting has real
// multiplicity to count across the words sharing a font.
type FontRegistry struct {
	byName map[string]*fontEntry
}

// NewFontRegistry creates an empty, page-scoped font registry.
func NewFontRegistry() *FontRegistry {
	return &FontRegistry{byName: make(map[string]*fontEntry)}
}

// Intern returns a FontRef for info, reusing an existing entry with the same
// key and bumping its reference count.
func (r *FontRegistry) Intern(info *FontInfo) FontRef {
	if info == nil {
		return FontRef{}
	}
	key := info.Key()
	entry, ok := r.byName[key]
	if !ok {
		entry = &fontEntry{info: *info}
		r.byName[key] = entry
	}
	atomic.AddInt32(&entry.refCount, 1)
	return FontRef{entry: entry}
}

// Release decrements the reference count; when it reaches zero the entry is
// dropped from the registry.
func (r *FontRegistry) Release(ref FontRef) {
	if ref.entry == nil {
		return
	}
	if atomic.AddInt32(&ref.entry.refCount, -1) <= 0 {
		delete(r.byName, ref.entry.info.Key())
	}
}

// Info returns the underlying FontInfo, or the zero value if ref is empty.
func (ref FontRef) Info() FontInfo {
	if ref.entry == nil {
		return FontInfo{}
	}
	return ref.entry.info
}

// SameIdentity reports whether two refs point at the same interned font.
func (ref FontRef) SameIdentity(other FontRef) bool {
	return ref.entry == other.entry
}

// Valid reports whether the ref names an interned font.
func (ref FontRef) Valid() bool {
	return ref.entry != nil
}
