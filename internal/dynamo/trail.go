package dynamo

// Trail records past positions in append order. A positive limit turns it
// into a ring buffer that keeps only the newest limit points.
type Trail struct {
	points []Vec
	start  int
	limit  int
}

// NewTrail returns an empty trail. limit <= 0 means unbounded.
func NewTrail(limit int) *Trail {
	if limit < 0 {
		limit = 0
	}
	t := &Trail{limit: limit}
	if limit > 0 {
		t.points = make([]Vec, 0, limit)
	}
	return t
}

func (t *Trail) Limit() int { return t.limit }
func (t *Trail) Len() int   { return len(t.points) }

func (t *Trail) Append(p Vec) {
	if t.limit == 0 || len(t.points) < t.limit {
		t.points = append(t.points, p)
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % t.limit
}

// Points returns the stored positions oldest first.
func (t *Trail) Points() []Vec {
	out := make([]Vec, len(t.points))
	n := copy(out, t.points[t.start:])
	copy(out[n:], t.points[:t.start])
	return out
}

// Last returns the most recently appended point.
func (t *Trail) Last() (Vec, bool) {
	if len(t.points) == 0 {
		return Vec{}, false
	}
	return t.points[(t.start+len(t.points)-1)%len(t.points)], true
}

func (t *Trail) Reset() {
	t.points = t.points[:0]
	t.start = 0
}

func (t *Trail) Clone() *Trail {
	c := &Trail{limit: t.limit}
	c.points = make([]Vec, 0, cap(t.points))
	c.points = append(c.points, t.Points()...)
	return c
}
