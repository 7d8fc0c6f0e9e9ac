package clearcolor

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestColorChannel(t *testing.T) {
	c := Color{R: 0.1, G: 0.2, B: 0.3, A: 0.4}
	for i, want := range []float64{0.1, 0.2, 0.3, 0.4} {
		if got := c.Channel(i); got != want {
			t.Errorf("Channel(%d) = %v, want %v", i, got, want)
		}
	}
	if got := c.Channel(4); !math.IsNaN(got) {
		t.Errorf("Channel(4) = %v, want NaN", got)
	}
	if got := c.Channel(-1); !math.IsNaN(got) {
		t.Errorf("Channel(-1) = %v, want NaN", got)
	}
}

func TestColorSetChannel(t *testing.T) {
	var c Color
	c.SetChannel(0, 1)
	c.SetChannel(1, 0.5)
	c.SetChannel(2, 0.25)
	c.SetChannel(3, 0.75)
	c.SetChannel(7, 9)
	want := Color{R: 1, G: 0.5, B: 0.25, A: 0.75}
	if c != want {
		t.Errorf("SetChannel result = %+v, want %+v", c, want)
	}
}

func TestNewPhased(t *testing.T) {
	p := NewPhased()
	if p.Color() != Black {
		t.Errorf("start color = %+v, want %+v", p.Color(), Black)
	}
	if !p.Growing() || p.Channel() != 0 || p.Target() != 1 {
		t.Errorf("start state growing=%v channel=%d target=%d, want true 0 1", p.Growing(), p.Channel(), p.Target())
	}
}

func TestNewPhasedFromClamps(t *testing.T) {
	p := NewPhasedFrom(Color{R: -3, G: 2, B: math.NaN(), A: 1}, false, -1)
	c := p.Color()
	if c.R != 0 || c.G != 1 || c.B != 0 {
		t.Errorf("clamped color = %+v, want R=0 G=1 B=0", c)
	}
	if p.Channel() != 2 {
		t.Errorf("channel = %d, want 2", p.Channel())
	}
}

func TestUpdateNonPositiveRate(t *testing.T) {
	p := NewPhasedFrom(Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, true, 0)
	before := p.Color()
	for _, rate := range []float64{0, -0.1, math.NaN()} {
		if got := p.Update(rate); got != before {
			t.Errorf("Update(%v) = %+v, want unchanged %+v", rate, got, before)
		}
	}
}

// The documented example: from black, growing on channel 0, green ramps to 1 and the
// animator then shrinks channel 1's predecessor.
func TestUpdateRampsGreenThenShrinksRed(t *testing.T) {
	p := NewPhasedFrom(Color{A: 1}, true, 0)
	steps := 0
	for p.Color().G < 1 {
		c := p.Update(DefaultRate)
		if c.R != 0 || c.B != 0 {
			t.Fatalf("step %d changed a channel other than green: %+v", steps, c)
		}
		steps++
		if steps > 1000 {
			t.Fatal("green never reached 1")
		}
	}
	if steps < 199 || steps > 201 {
		t.Errorf("green reached 1 after %d steps, want about 200", steps)
	}
	if p.Growing() {
		t.Error("animator still growing after green reached 1")
	}
	if p.Channel() != 1 {
		t.Errorf("channel = %d, want 1", p.Channel())
	}
	if p.Target() != 0 {
		t.Errorf("target = %d, want 0 (predecessor of channel 1)", p.Target())
	}
}

func TestUpdateFlipsAtBounds(t *testing.T) {
	tests := []struct {
		name        string
		start       Color
		growing     bool
		channel     int
		wantGrowing bool
		wantChannel int
	}{
		{
			name:        "growing reaches one",
			start:       Color{R: 0, G: 0.999, B: 0, A: 1},
			growing:     true,
			channel:     0,
			wantGrowing: false,
			wantChannel: 1,
		},
		{
			name:        "shrinking reaches zero",
			start:       Color{R: 0.001, G: 1, B: 0, A: 1},
			growing:     false,
			channel:     1,
			wantGrowing: true,
			wantChannel: 1,
		},
		{
			name:        "growing below bound keeps mode",
			start:       Color{R: 0, G: 0.5, B: 0, A: 1},
			growing:     true,
			channel:     0,
			wantGrowing: true,
			wantChannel: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPhasedFrom(tt.start, tt.growing, tt.channel)
			p.Update(DefaultRate)
			if p.Growing() != tt.wantGrowing || p.Channel() != tt.wantChannel {
				t.Errorf("after update growing=%v channel=%d, want %v %d",
					p.Growing(), p.Channel(), tt.wantGrowing, tt.wantChannel)
			}
		})
	}
}

func TestUpdateSaturatedTargetMovesAnotherChannel(t *testing.T) {
	// Shrink target (red) is already 0, so the step goes to growing blue instead.
	p := NewPhasedFrom(Color{R: 0, G: 1, B: 0, A: 1}, false, 1)
	c := p.Update(0.1)
	if c.R != 0 || c.G != 1 || c.B != 0.1 {
		t.Errorf("color = %+v, want blue stepped to 0.1", c)
	}
	if !p.Growing() {
		t.Error("animator should be growing")
	}
}

func TestUpdateProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 200; trial++ {
		start := Color{R: rng.Float64(), G: rng.Float64(), B: rng.Float64(), A: 1}
		switch trial % 4 {
		case 0:
			start.SetChannel(rng.IntN(3), 0)
		case 1:
			start.SetChannel(rng.IntN(3), 1)
		}
		p := NewPhasedFrom(start, rng.IntN(2) == 0, rng.IntN(3))
		rate := 0.001 + rng.Float64()*0.2
		prev := p.Color()
		for step := 0; step < 500; step++ {
			wasGrowing := p.Growing()
			target := p.Target()
			next := p.Update(rate)
			changed := 0
			for i := 0; i < 3; i++ {
				v := next.Channel(i)
				if v < 0 || v > 1 {
					t.Fatalf("trial %d step %d: channel %d = %v out of [0,1]", trial, step, i, v)
				}
				if v != prev.Channel(i) {
					changed++
				}
			}
			if changed != 1 {
				t.Fatalf("trial %d step %d: %d channels changed (%+v -> %+v)", trial, step, changed, prev, next)
			}
			if next.A != 1 {
				t.Fatalf("trial %d step %d: alpha changed to %v", trial, step, next.A)
			}
			// When the targeted channel moved and hit its bound the mode must flip.
			v := next.Channel(target)
			if wasGrowing && v > prev.Channel(target) {
				if v == 1 && p.Growing() {
					t.Fatalf("trial %d step %d: reached 1 while growing but did not flip", trial, step)
				}
				if v < 1 && !p.Growing() {
					t.Fatalf("trial %d step %d: flipped before reaching 1", trial, step)
				}
			}
			if !wasGrowing && v < prev.Channel(target) {
				if v == 0 && !p.Growing() {
					t.Fatalf("trial %d step %d: reached 0 while shrinking but did not flip", trial, step)
				}
				if v > 0 && p.Growing() {
					t.Fatalf("trial %d step %d: flipped before reaching 0", trial, step)
				}
			}
			prev = next
		}
	}
}
