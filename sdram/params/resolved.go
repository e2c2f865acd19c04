package params

import "fmt"

// ResolvedKind tells how a package id maps onto the parameter tables.
type ResolvedKind uint8

// The three outcomes of resolving a package id.
const (
	// KindUnmapped means that no table is known for the id.
	KindUnmapped ResolvedKind = iota
	// KindDirect means that the id selects a table without any patching.
	KindDirect
	// KindPatched means that the table is the base table of the revision
	// with the patches of a patch code applied.
	KindPatched
)

func (k ResolvedKind) String() string {
	switch k {
	case KindDirect:
		return "Direct"
	case KindPatched:
		return "Patched"
	default:
		return "Unmapped"
	}
}

// Resolved is the outcome of resolving a package id. For Direct and Unmapped
// the index is the package id; for Patched it is the patch code. The zero
// value is Unmapped(0).
type Resolved struct {
	kind  ResolvedKind
	index uint8
}

// Direct selects the table of package id.
func Direct(id uint8) Resolved {
	return Resolved{kind: KindDirect, index: id}
}

// Patched selects the base table with the patches of code applied.
func Patched(code uint8) Resolved {
	if code == 0 {
		panic("patch code 0 means no patch, use Direct")
	}

	return Resolved{kind: KindPatched, index: code}
}

// Unmapped records that id has no table.
func Unmapped(id uint8) Resolved {
	return Resolved{kind: KindUnmapped, index: id}
}

// Kind returns how the id was resolved.
func (r Resolved) Kind() ResolvedKind {
	return r.kind
}

// Index returns the package id or the patch code, depending on Kind.
func (r Resolved) Index() uint8 {
	return r.index
}

func (r Resolved) String() string {
	return fmt.Sprintf("%s(%d)", r.kind, r.index)
}
