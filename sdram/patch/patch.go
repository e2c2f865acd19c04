// Package patch maps package ids onto parameter records. On T210B01 many
// packages share one record, or differ from the base record by a few values.
package patch

import (
	"fmt"

	"github.com/sarchlab/sdraminit/sdram/params"
	"github.com/sarchlab/sdraminit/sdram/strap"
)

// Ids of T210B01 that use the base record as is.
var directIDs = map[strap.PackageID]bool{
	8:  true,
	10: true,
	12: true,
	14: true,
}

// Groups lists, for every patch code, the package ids it covers.
var Groups = [params.NumPatchCodes + 1][]strap.PackageID{
	1: {9, 13},
	2: {11, 15},
	3: {17, 19, 24},
	4: {18, 23, 28},
	5: {20, 21, 22},
	6: {25, 26, 27},
	7: {3, 5, 6},
	8: {29, 30, 31},
	9: {32, 33, 34},
}

var codeOf = buildCodeIndex()

func buildCodeIndex() map[strap.PackageID]uint8 {
	index := make(map[strap.PackageID]uint8)

	for code, ids := range Groups {
		for _, id := range ids {
			if _, dup := index[id]; dup {
				panic(fmt.Sprintf("package id %d is in two patch groups", id))
			}

			if directIDs[id] {
				panic(fmt.Sprintf("package id %d is direct and patched", id))
			}

			index[id] = uint8(code)
		}
	}

	return index
}

// Resolve tells which record serves a package. On T210 every id is its own
// record. On T210B01 an id is direct, in a patch group, or unmapped; the
// decision is made by membership and never by the value of a patch code.
func Resolve(rev params.Revision, id strap.PackageID) params.Resolved {
	if rev == params.RevisionA {
		return params.Direct(uint8(id))
	}

	if directIDs[id] {
		return params.Direct(uint8(id))
	}

	if code, ok := codeOf[id]; ok {
		return params.Patched(code)
	}

	return params.Unmapped(uint8(id))
}

// Apply returns base with the patches of code applied. Base must be a
// T210B01 record.
func Apply(base params.Record, code uint8) params.Record {
	if base.Revision != params.RevisionB {
		panic("patches only apply to " + params.RevisionB.String() + " records")
	}

	return params.ApplyPatch(base, code)
}

// Select resolves a package and looks up its record.
func Select(
	rev params.Revision,
	id strap.PackageID,
) (params.Resolved, params.Record, error) {
	r := Resolve(rev, id)

	rec, err := params.Lookup(rev, r)
	if err != nil {
		return r, params.Record{}, fmt.Errorf("package id %d: %w", id, err)
	}

	return r, rec, nil
}
