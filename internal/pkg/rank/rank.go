package rank

import (
	"math"
	"time"
)

// Tuning constants for the hot ranking. The epoch matches the one the site
// launched with; the divisor controls how fast score advantage decays against
// recency. Both are plain tuning knobs, overridable through Config.
const (
	DefaultEpoch   int64   = 1134028003
	DefaultDivisor float64 = 45000
)

type Config struct {
	Epoch   int64
	Divisor float64
}

func DefaultConfig() Config {
	return Config{Epoch: DefaultEpoch, Divisor: DefaultDivisor}
}

// Hot computes the decay-weighted display rank for a net vote score and a
// creation time: sign(score) * log10(max(|score|, 1)) + (t - epoch) / divisor.
// Zero-score entries rank purely by recency.
func (c Config) Hot(score int, createdAt time.Time) float64 {
	order := math.Log10(math.Max(math.Abs(float64(score)), 1))
	sign := 0.0
	if score > 0 {
		sign = 1
	} else if score < 0 {
		sign = -1
	}
	seconds := float64(createdAt.Unix())
	return sign*order + (seconds-float64(c.Epoch))/c.Divisor
}

func Hot(score int, createdAt time.Time) float64 {
	return DefaultConfig().Hot(score, createdAt)
}
