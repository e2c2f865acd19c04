package params

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnsupportedPackage is returned when no parameter record exists for a
// package.
var ErrUnsupportedPackage = errors.New("unsupported DRAM package")

type tableKey struct {
	rev Revision
	r   Resolved
}

// Built once at startup and never written again.
var tables = buildTables()

func buildTables() map[tableKey]Record {
	t := make(map[tableKey]Record)

	for r, rec := range t210Records() {
		t[tableKey{RevisionA, r}] = rec
	}

	for r, rec := range t210b01Records() {
		t[tableKey{RevisionB, r}] = rec
	}

	return t
}

// Lookup returns the record of a resolved package.
func Lookup(rev Revision, r Resolved) (Record, error) {
	rec, ok := tables[tableKey{rev, r}]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s on %s", ErrUnsupportedPackage, r, rev)
	}

	return rec, nil
}

// IndexedRecord is a record together with the resolved index that selects it.
type IndexedRecord struct {
	Resolved Resolved
	Record   Record
}

// Entries lists every record of a revision, direct records first, each
// group ordered by index.
func Entries(rev Revision) []IndexedRecord {
	var list []IndexedRecord

	for k, rec := range tables {
		if k.rev == rev {
			list = append(list, IndexedRecord{Resolved: k.r, Record: rec})
		}
	}

	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].Resolved, list[j].Resolved
		if a.kind != b.kind {
			return a.kind < b.kind
		}

		return a.index < b.index
	})

	return list
}

// BaseRecord returns the record that patches of a revision apply to. It
// exists only for revisions that use patching.
func BaseRecord(rev Revision) (Record, error) {
	if rev != RevisionB {
		return Record{}, fmt.Errorf("%w: %s has no base table",
			ErrUnsupportedPackage, rev)
	}

	return t210b01Base(), nil
}
