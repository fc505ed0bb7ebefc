package display

import "fmt"

// FreqCells is the width of the frequency readout in character cells:
// up to five kHz digits, the point and two decimals.
const FreqCells = 8

// FreqText formats f in kHz with two decimals, at least seven characters
// wide, right aligned in FreqCells cells.
func FreqText(f uint32) string {
	cents := (uint64(f) + 5) / 10
	return fmt.Sprintf("%*s", FreqCells, fmt.Sprintf("%d.%02d", cents/100, cents%100))
}

// DiffDigits returns the cell positions where next differs from prev. A
// prev of a different length counts as entirely different.
func DiffDigits(prev, next string) []int {
	var out []int
	for i := 0; i < len(next); i++ {
		if len(prev) != len(next) || prev[i] != next[i] {
			out = append(out, i)
		}
	}
	return out
}

// cursorCell maps a step cursor (1 = 1 MHz .. 6 = 10 Hz) to its cell in
// the readout, skipping the decimal point.
func cursorCell(step int) int {
	if step > 4 {
		return step + 1
	}
	return step
}
