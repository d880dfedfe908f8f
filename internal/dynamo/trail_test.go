package dynamo

import "testing"

func TestTrail_Unbounded(t *testing.T) {
	tr := NewTrail(0)
	for i := 0; i < 100; i++ {
		tr.Append(Vec{X: float64(i), Y: -float64(i)})
	}

	if tr.Len() != 100 {
		t.Fatalf("expected 100 points, got %d", tr.Len())
	}
	pts := tr.Points()
	for i, p := range pts {
		if p.X != float64(i) || p.Y != -float64(i) {
			t.Fatalf("point %d out of order: %v", i, p)
		}
	}
}

func TestTrail_RingBuffer(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		appends int
		first   float64
		last    float64
	}{
		{"under limit", 5, 3, 0, 2},
		{"exactly full", 5, 5, 0, 4},
		{"wrapped once", 5, 7, 2, 6},
		{"wrapped many", 4, 23, 19, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTrail(tt.limit)
			for i := 0; i < tt.appends; i++ {
				tr.Append(Vec{X: float64(i)})
			}

			want := tt.appends
			if want > tt.limit {
				want = tt.limit
			}
			if tr.Len() != want {
				t.Fatalf("Len() = %d, want %d", tr.Len(), want)
			}

			pts := tr.Points()
			if pts[0].X != tt.first {
				t.Errorf("oldest = %v, want %v", pts[0].X, tt.first)
			}
			if pts[len(pts)-1].X != tt.last {
				t.Errorf("newest = %v, want %v", pts[len(pts)-1].X, tt.last)
			}
			for i := 1; i < len(pts); i++ {
				if pts[i].X != pts[i-1].X+1 {
					t.Fatalf("points not chronological: %v", pts)
				}
			}

			last, ok := tr.Last()
			if !ok || last.X != tt.last {
				t.Errorf("Last() = %v, %v; want %v", last, ok, tt.last)
			}
		})
	}
}

func TestTrail_ResetAndClone(t *testing.T) {
	tr := NewTrail(3)
	for i := 0; i < 5; i++ {
		tr.Append(Vec{X: float64(i)})
	}

	c := tr.Clone()
	tr.Reset()

	if tr.Len() != 0 {
		t.Errorf("expected empty trail after reset, got %d", tr.Len())
	}
	if _, ok := tr.Last(); ok {
		t.Error("Last() on empty trail should report false")
	}
	if c.Len() != 3 {
		t.Errorf("clone lost points: %d", c.Len())
	}

	c.Append(Vec{X: 99})
	pts := c.Points()
	if pts[0].X != 3 || pts[2].X != 99 {
		t.Errorf("clone ring order wrong: %v", pts)
	}
}
