// Package timing provides frequencies, virtual time and the clocks that the
// bring-up code busy-waits on.
package timing

import "fmt"

// VTimeInSec is a point in virtual time, or a duration, in seconds.
type VTimeInSec float64

// Microseconds converts a microsecond count into seconds.
func Microseconds(us uint32) VTimeInSec {
	return VTimeInSec(float64(us) * 1e-6)
}

// Freq is a frequency in Hz.
type Freq float64

// Frequency units.
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// String prints the frequency in MHz, the unit clock tables use.
func (f Freq) String() string {
	return fmt.Sprintf("%.1f MHz", float64(f/MHz))
}
