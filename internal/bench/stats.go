package bench

import (
	"math"

	"workSchedule/internal/schedule"
)

// IntStats - сводка по значениям целевой функции. Недопустимые решения
// (schedule.Worst) не входят в среднее и учитываются в Missing.
type IntStats struct {
	N       int
	Missing int
	Best    int
	Mean    float64
	Std     float64
}

func CalcIntStats(values []int) IntStats {
	fs := make([]float64, 0, len(values))
	missing := 0
	for _, v := range values {
		if v == schedule.Worst {
			missing++
			continue
		}
		fs = append(fs, float64(v))
	}
	st := CalcFloatStats(fs)
	return IntStats{
		N:       st.N,
		Missing: missing,
		Best:    int(st.Best),
		Mean:    st.Mean,
		Std:     st.Std,
	}
}

// FloatStats - сводка по конечным значениям, бесконечности и NaN учитываются в Missing.
type FloatStats struct {
	N       int
	Missing int
	Best    float64
	Mean    float64
	Std     float64
}

func CalcFloatStats(values []float64) FloatStats {
	var s FloatStats

	best := math.Inf(1)
	sum := 0.0
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			s.Missing++
			continue
		}
		s.N++
		best = min(best, v)
		sum += v
	}
	if s.N == 0 {
		return s
	}
	mean := sum / float64(s.N)

	// выборочная дисперсия
	variance := 0.0
	if s.N >= 2 {
		for _, v := range values {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				continue
			}
			d := v - mean
			variance += d * d
		}
		variance /= float64(s.N - 1)
	}

	s.Best = best
	s.Mean = mean
	s.Std = math.Sqrt(variance)
	return s
}
