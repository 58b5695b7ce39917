package imu

// ReadingSet is the ordered collection of raw readings a calibration is fit
// against. It is never modified after construction.
type ReadingSet struct {
	readings []Reading
}

// NewReadingSet copies the readings so later changes to the caller's slice
// do not leak into a running fit.
func NewReadingSet(readings []Reading) *ReadingSet {
	cp := make([]Reading, len(readings))
	copy(cp, readings)
	return &ReadingSet{readings: cp}
}

// Len returns the number of readings. A nil set is empty.
func (s *ReadingSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.readings)
}

// At returns the i-th reading.
func (s *ReadingSet) At(i int) Reading {
	return s.readings[i]
}

// Each calls fn for every reading in order.
func (s *ReadingSet) Each(fn func(Reading)) {
	if s == nil {
		return
	}
	for _, r := range s.readings {
		fn(r)
	}
}

// Axis returns the raw component of every reading for one axis.
func (s *ReadingSet) Axis(axis int) []float64 {
	values := make([]float64, 0, s.Len())
	s.Each(func(r Reading) {
		values = append(values, float64(r[axis]))
	})
	return values
}

// Extrema returns the observed raw range of one axis. ok is false for an
// empty set.
func (s *ReadingSet) Extrema(axis int) (min, max int, ok bool) {
	if s.Len() == 0 {
		return 0, 0, false
	}
	min, max = s.readings[0][axis], s.readings[0][axis]
	for _, r := range s.readings[1:] {
		if r[axis] < min {
			min = r[axis]
		}
		if r[axis] > max {
			max = r[axis]
		}
	}
	return min, max, true
}
