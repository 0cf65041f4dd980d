package scale

import (
	"math"
	"strconv"

	"github.com/matzehuels/parcoords/pkg/dimension"
)

// Tick is a labelled position on an axis.
type Tick struct {
	Label string
	Pos   float64
}

// Ticks returns roughly want ticks. Numerical scales use 1-2-5 steps
// aligned to multiples of the step; nominal scales return every category.
func (s *Scale) Ticks(want int) []Tick {
	if s.kind == dimension.Nominal {
		ticks := make([]Tick, len(s.categories))
		for i, c := range s.categories {
			ticks[i] = Tick{Label: c, Pos: s.point(i)}
		}
		return ticks
	}

	if s.min == s.max {
		return []Tick{{Label: formatTick(s.min, 0), Pos: s.linear(s.min)}}
	}
	if want < 2 {
		want = 2
	}

	step := niceStep((s.max - s.min) / float64(want-1))
	decimals := max(0, -int(math.Floor(math.Log10(step))))
	first := math.Ceil(s.min/step) * step

	var ticks []Tick
	for i := 0; ; i++ {
		v := first + float64(i)*step
		if v > s.max+step*1e-9 {
			break
		}
		ticks = append(ticks, Tick{Label: formatTick(v, decimals), Pos: s.linear(v)})
	}
	return ticks
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / mag; {
	case f <= 1:
		return mag
	case f <= 2:
		return 2 * mag
	case f <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func formatTick(v float64, decimals int) string {
	if v == 0 {
		v = 0 // normalise -0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
