package lp0

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Snapshot is the packed controller state as it sits in the scratch
// registers, one little-endian word after another.
type Snapshot [NumWords * 4]byte

// Word returns scratch word i.
func (s Snapshot) Word(i int) uint32 {
	return binary.LittleEndian.Uint32(s[i*4:])
}

// Words returns all scratch words.
func (s Snapshot) Words() []uint32 {
	words := make([]uint32, NumWords)
	for i := range words {
		words[i] = s.Word(i)
	}

	return words
}

func (s *Snapshot) setWord(i int, v uint32) {
	binary.LittleEndian.PutUint32(s[i*4:], v)
}

func (s Snapshot) String() string {
	var b strings.Builder
	for i, w := range s.Words() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%08x", w)
	}

	return b.String()
}

func pack(read func(reg uint32) uint32) Snapshot {
	var words [NumWords]uint32
	values := make(map[uint32]uint32)

	for _, f := range layout {
		v, ok := values[f.reg]
		if !ok {
			v = read(f.reg)
			values[f.reg] = v
		}

		words[f.scratch] = f.pack(words[f.scratch], v)
	}

	var s Snapshot
	for i, w := range words {
		s.setWord(i, w)
	}

	return s
}
