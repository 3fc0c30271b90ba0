package stats

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 {
		t.Fatalf("count = %d, want 0", s.Count)
	}
	if s.Average != nil || s.Median != nil {
		t.Fatalf("avg/median should be nil for empty input")
	}
	for i, n := range s.Histogram {
		if n != 0 {
			t.Fatalf("histogram[%d] = %d, want 0", i, n)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]int{8, 9, 7, 8, 10})

	if s.Count != 5 {
		t.Fatalf("count = %d, want 5", s.Count)
	}
	if s.Average == nil || *s.Average != 8.4 {
		t.Fatalf("avg = %v, want 8.4", s.Average)
	}
	if s.Median == nil || *s.Median != 8 {
		t.Fatalf("median = %v, want 8", s.Median)
	}

	want := [10]int{0, 0, 0, 0, 0, 0, 1, 2, 1, 1}
	if s.Histogram != want {
		t.Fatalf("histogram = %v, want %v", s.Histogram, want)
	}

	total := 0
	for _, n := range s.Histogram {
		total += n
	}
	if total != s.Count {
		t.Fatalf("histogram sum = %d, want %d", total, s.Count)
	}
}

func TestMedianEven(t *testing.T) {
	if got := Median([]int{1, 10}); got != 5.5 {
		t.Fatalf("median = %v, want 5.5", got)
	}
	if got := Median([]int{3, 5, 7, 9}); got != 6 {
		t.Fatalf("median = %v, want 6", got)
	}
}

func TestMedianOdd(t *testing.T) {
	if got := Median([]int{9, 1, 5}); got != 5 {
		t.Fatalf("median = %v, want 5", got)
	}
}

func TestSummarizeAverageRounding(t *testing.T) {
	// 7+8+8 = 23 / 3 = 7.666... -> 7.7
	s := Summarize([]int{7, 8, 8})
	if s.Average == nil || *s.Average != 7.7 {
		t.Fatalf("avg = %v, want 7.7", s.Average)
	}
}

func TestSummarizeBounds(t *testing.T) {
	for _, scores := range [][]int{{1}, {10}, {1, 10, 5, 5}} {
		s := Summarize(scores)
		if s.Average == nil || *s.Average < 1 || *s.Average > 10 {
			t.Fatalf("avg %v out of [1,10] for %v", s.Average, scores)
		}
	}
}
