package signal

import (
	"strconv"
	"testing"
)

// FuzzParse verifies Parse is total: no input may panic or produce a
// Parameter that violates the non-empty and wagon-range invariants.
func FuzzParse(f *testing.F) {
	f.Add("W_TEMP_SENSOR_5")
	f.Add("B_DOOR_OPEN_2::CAN_CTRL|Door open")
	f.Add("Unnamed: 3")
	f.Add("Date: 2024-05-01")
	f.Add("0042")
	f.Add("::")
	f.Add("_")
	f.Add("索引_列")

	f.Fuzz(func(t *testing.T, header string) {
		p := Parse(header)
		if p.SignalCode == "" {
			t.Errorf("empty signal code for header %q", header)
		}
		if p.FullColumn == "" {
			t.Errorf("empty full column for header %q", header)
		}
		if p.Wagon != "" {
			n, err := strconv.Atoi(p.Wagon)
			if err != nil || n < 1 || n > 15 {
				t.Errorf("wagon %q out of range for header %q", p.Wagon, header)
			}
		}
	})
}
