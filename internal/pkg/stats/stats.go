package stats

import (
	"math"
	"sort"
)

// Summary holds the synchronously recomputed rating aggregate for one album.
// Average and Median are nil when there are no ratings.
type Summary struct {
	Count     int      `json:"count"`
	Average   *float64 `json:"avg"`
	Median    *float64 `json:"median"`
	Histogram [10]int  `json:"histogram"`
}

// Summarize computes count, average (rounded to 1 decimal), median and the
// 1..10 histogram from raw scores. Scores outside [1,10] are ignored for the
// histogram but still counted toward average/median; callers are expected to
// have validated them at the write path.
func Summarize(scores []int) Summary {
	s := Summary{Count: len(scores)}
	if len(scores) == 0 {
		return s
	}

	sum := 0
	for _, score := range scores {
		sum += score
		if score >= 1 && score <= 10 {
			s.Histogram[score-1]++
		}
	}
	avg := Round1(float64(sum) / float64(len(scores)))
	s.Average = &avg

	med := Median(scores)
	s.Median = &med
	return s
}

// Median returns the standard sorted-middle median: the middle value for odd
// counts, the mean of the two middle values for even counts. Panics on empty
// input; Summarize guards the empty case.
func Median(scores []int) float64 {
	sorted := make([]int, len(scores))
	copy(sorted, scores)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

// Round1 rounds to one decimal place, the precision every rating average is
// reported at.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
