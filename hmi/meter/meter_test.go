package meter

import (
	"testing"

	"usdr/hmi/radio"
	"usdr/hmi/render"
	"usdr/hmi/render/rendertest"
)

func TestSLevel(t *testing.T) {
	cases := []struct {
		sample int32
		atten  radio.Atten
		want   int
	}{
		{0, radio.Atten0, 0},
		{2, radio.Atten0, 0},
		{3, radio.Atten0, 1},
		{19, radio.Atten0, 4},
		{601, radio.Atten0, 10},
		{10000, radio.Atten0, 10},
		{10, radio.Preamp10, 4},
		{1, radio.Atten30, 4},
		{2, radio.Atten10, 2},
		{5, radio.NumAtten + 2, 2},
	}
	for _, c := range cases {
		if got := SLevel(c.sample, c.atten); got != c.want {
			t.Fatalf("SLevel(%d, %v) = %d, want %d", c.sample, c.atten, got, c.want)
		}
	}
}

func TestTXPower(t *testing.T) {
	cases := []struct{ adc, want int }{
		{0, 0},
		{19, 0},
		{20, 1},
		{159, 7},
		{160, 8},
		{200, 10},
		{255, 10},
	}
	for _, c := range cases {
		if got := TXPower(c.adc); got != c.want {
			t.Fatalf("TXPower(%d) = %d, want %d", c.adc, got, c.want)
		}
	}
}

func TestPeakHold(t *testing.T) {
	var p PeakHold

	if !p.Observe(5) {
		t.Fatalf("first peak not shown")
	}
	for i := 0; i < DefaultHold-1; i++ {
		if p.Observe(3) {
			t.Fatalf("smaller value shown during hold at tick %d", i)
		}
	}
	if !p.Observe(8) {
		t.Fatalf("bigger value not shown")
	}
	for i := 0; i < DefaultHold; i++ {
		p.Observe(1)
	}
	if !p.Observe(1) {
		t.Fatalf("value not shown after hold expired")
	}
}

func TestBargraphGrowAndShrink(t *testing.T) {
	b := NewTXPower(10, 60)
	rec := rendertest.New()

	b.Draw(rec, 3, false)
	fills := rec.Filter(rendertest.FillRect)
	if len(fills) != 4 {
		t.Fatalf("fills = %d, want segment 0 plus 1..3", len(fills))
	}
	for i, op := range fills {
		if op.Color != TXPowerColors[i] {
			t.Fatalf("segment %d colour = %#x, want %#x", i, op.Color, TXPowerColors[i])
		}
		if op.X != 10+12*i || op.Y != 60 || op.H != 8 {
			t.Fatalf("segment %d rect = %+v", i, op)
		}
	}

	rec.Reset()
	b.Draw(rec, 1, false)
	fills = rec.Filter(rendertest.FillRect)
	if len(fills) != 2 {
		t.Fatalf("erase fills = %d, want 2", len(fills))
	}
	for _, op := range fills {
		if op.Color != render.Background {
			t.Fatalf("erase colour = %#x, want background", op.Color)
		}
	}

	rec.Reset()
	b.Draw(rec, 1, false)
	if len(rec.Ops) != 0 {
		t.Fatalf("unchanged level drew %d ops", len(rec.Ops))
	}
}

func TestBargraphClampsAndResets(t *testing.T) {
	b := NewSMeter(10, 60)
	rec := rendertest.New()

	b.Draw(rec, 42, false)
	if b.Level() != Segments-1 {
		t.Fatalf("Level() = %d, want %d", b.Level(), Segments-1)
	}
	last := rec.Ops[len(rec.Ops)-1]
	if last.H != Segments+1 || last.Y != 60-10+8 || last.Color != render.Emerald {
		t.Fatalf("top segment = %+v", last)
	}

	rec.Reset()
	b.Draw(rec, 2, true)
	if n := rec.Count(rendertest.FillRect); n != 3 {
		t.Fatalf("reset draw fills = %d, want 3", n)
	}
	if rec.Ops[0].H != 3 || rec.Ops[0].Y != 60-1+8 {
		t.Fatalf("segment 0 = %+v", rec.Ops[0])
	}

	rec.Reset()
	b.Draw(rec, -4, false)
	if b.Level() != 0 {
		t.Fatalf("Level() = %d, want 0", b.Level())
	}
}
