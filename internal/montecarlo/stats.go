package montecarlo

import "math"

// series accumulates one per-turn statistic as running sums and sums of
// squares, one slot per turn.
type series struct {
	sum   []float64
	sumSq []float64
}

func newSeries(turns int) *series {
	return &series{
		sum:   make([]float64, turns),
		sumSq: make([]float64, turns),
	}
}

func (s *series) observe(turn int, v float64) {
	s.sum[turn] += v
	s.sumSq[turn] += v * v
}

// finalize converts the running sums into per-turn means and population
// standard deviations over n observations.
func (s *series) finalize(n int) TurnSeries {
	out := TurnSeries{
		Mean:   make([]float64, len(s.sum)),
		StdDev: make([]float64, len(s.sum)),
	}
	if n <= 0 {
		return out
	}
	fn := float64(n)
	for i := range s.sum {
		mean := s.sum[i] / fn
		out.Mean[i] = mean
		variance := s.sumSq[i]/fn - mean*mean
		if variance < 0 {
			// floating error on constant series
			variance = 0
		}
		out.StdDev[i] = math.Sqrt(variance)
	}
	return out
}

// counter accumulates per-turn event counts, reported as percentages.
type counter struct {
	hits []int
}

func newCounter(turns int) *counter {
	return &counter{hits: make([]int, turns)}
}

func (c *counter) observe(turn int, hit bool) {
	if hit {
		c.hits[turn]++
	}
}

func (c *counter) percentages(n int) []float64 {
	out := make([]float64, len(c.hits))
	if n <= 0 {
		return out
	}
	for i, h := range c.hits {
		out[i] = 100 * float64(h) / float64(n)
	}
	return out
}
