package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	h := func(n int) time.Time { return base.Add(time.Duration(n) * time.Hour) }

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"adjacent after", h(0), h(1), h(1), h(2), false},
		{"adjacent before", h(1), h(2), h(0), h(1), false},
		{"partial", h(0), h(2), h(1), h(3), true},
		{"contained", h(0), h(4), h(1), h(2), true},
		{"identical", h(0), h(1), h(0), h(1), true},
		{"disjoint", h(0), h(1), h(3), h(4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1), "must be symmetric")
		})
	}
}

func TestValidDuration(t *testing.T) {
	start := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.False(t, ValidDuration(start, start.Add(10*time.Minute)))
	assert.False(t, ValidDuration(start, start.Add(15*time.Minute)))
	assert.True(t, ValidDuration(start, start.Add(15*time.Minute+time.Second)))
	assert.True(t, ValidDuration(start, start.Add(16*time.Minute)))
	assert.False(t, ValidDuration(start, start.Add(-time.Hour)))
}

func TestWiden(t *testing.T) {
	base := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	s, e := widen(base.Add(900*time.Millisecond), base.Add(time.Hour+50*time.Millisecond))
	assert.Equal(t, base, s)
	assert.Equal(t, base.Add(time.Hour+time.Second), e)

	s, e = widen(base, base.Add(time.Hour))
	assert.Equal(t, base, s)
	assert.Equal(t, base.Add(time.Hour), e)
}
