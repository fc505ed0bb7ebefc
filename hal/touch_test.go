package hal

import "testing"

func TestPanelCalibrationMap(t *testing.T) {
	c := PanelCalibration
	tests := []struct {
		rawX, rawY int
		x, y       uint16
	}{
		{int(c.MinX), int(c.MinY), 0, 0},
		{int(c.MaxX), int(c.MaxY), PanelWidth - 1, PanelHeight - 1},
		{0, 0, 0, 0},
		{4095, 4095, PanelWidth - 1, PanelHeight - 1},
		{-5, -5, 0, 0},
		{int(c.MinX+c.MaxX) / 2, int(c.MinY+c.MaxY) / 2, 159, 119},
	}
	for _, tt := range tests {
		x, y := c.Map(tt.rawX, tt.rawY)
		if x != tt.x || y != tt.y {
			t.Fatalf("Map(%d, %d) = (%d, %d), want (%d, %d)", tt.rawX, tt.rawY, x, y, tt.x, tt.y)
		}
	}
}

func TestTouchCalibrationDegenerate(t *testing.T) {
	c := TouchCalibration{MinX: 100, MaxX: 100, MinY: 50, MaxY: 10}
	if x, y := c.Map(200, 200); x != 0 || y != 0 {
		t.Fatalf("Map() on empty extents = (%d, %d), want (0, 0)", x, y)
	}
}
