package datamap

import (
	"math"
	"sort"
)

// Stats summarizes one numeric column.
type Stats struct {
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Std    float64 `json:"std"`
	Count  int     `json:"count"`
}

// SummaryStats computes descriptive statistics over the parseable values
// of a column. ok is false when the column is absent; a present column
// with no numeric values yields zero stats with Count 0.
func (s *Slice) SummaryStats(column string) (Stats, bool) {
	values, ok := s.Numeric(column)
	if !ok {
		return Stats{}, false
	}
	return computeStats(values), true
}

func computeStats(values []float64) Stats {
	st := Stats{Count: len(values)}
	if len(values) == 0 {
		return st
	}

	st.Min = values[0]
	st.Max = values[0]
	for _, v := range values {
		st.Sum += v
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
	}
	st.Mean = st.Sum / float64(len(values))

	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		st.Median = sorted[mid]
	} else {
		st.Median = (sorted[mid-1] + sorted[mid]) / 2
	}

	var sq float64
	for _, v := range values {
		d := v - st.Mean
		sq += d * d
	}
	st.Std = math.Sqrt(sq / float64(len(values)))
	return st
}
