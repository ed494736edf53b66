// Package experiment runs many independent games and aggregates their outcomes.
package experiment

import (
	"fmt"
	"math"
	"strings"

	"github.com/peterkuimelis/onirim/internal/game"
)

// Statistic aggregates game outcomes. Success counts games that reached Win
// or Lose; Total also counts games aborted by an error.
type Statistic struct {
	Win     int `json:"win"`
	Lose    int `json:"lose"`
	Success int `json:"success"`
	Total   int `json:"total"`
	Opened  int `json:"opened"` // doors open at the end, summed over successful games
}

// Record counts one game that reached an outcome.
func (s *Statistic) Record(c *game.Content, out game.Outcome) {
	switch out {
	case game.OutcomeWin:
		s.Win++
		s.Success++
	case game.OutcomeLose:
		s.Lose++
		s.Success++
	}
	s.Opened += len(c.Opened)
	s.Total++
}

// RecordFailure counts a game that ended in an error instead of an outcome.
func (s *Statistic) RecordFailure() {
	s.Total++
}

// Add merges another partial statistic into s.
func (s *Statistic) Add(o Statistic) {
	s.Win += o.Win
	s.Lose += o.Lose
	s.Success += o.Success
	s.Total += o.Total
	s.Opened += o.Opened
}

// WinRatio is the share of successful games that were won.
func (s Statistic) WinRatio() float64 {
	if s.Success == 0 {
		return 0
	}
	return float64(s.Win) / float64(s.Success)
}

// AvgOpened is the mean number of doors open at the end of a successful game.
func (s Statistic) AvgOpened() float64 {
	if s.Success == 0 {
		return 0
	}
	return float64(s.Opened) / float64(s.Success)
}

// Report holds the spread of a ratio estimated from repeated trials.
type Report struct {
	Mean          float64
	StdDev        float64
	StdDevPct     float64 // StdDev relative to Mean, in percent
	StdErrMean    float64
	StdErrMeanPct float64 // StdErrMean relative to Mean, in percent
}

// NewReport describes numerator successes out of denominator Bernoulli trials.
func NewReport(numerator, denominator float64) Report {
	if denominator == 0 {
		return Report{}
	}
	mean := numerator / denominator
	stdDev := math.Sqrt(mean * (1 - mean))
	r := Report{
		Mean:       mean,
		StdDev:     stdDev,
		StdErrMean: stdDev / math.Sqrt(denominator),
	}
	if mean > 0 {
		r.StdDevPct = r.StdDev / mean * 100
		r.StdErrMeanPct = r.StdErrMean / mean * 100
	}
	return r
}

// Report describes the win ratio over successful games.
func (s Statistic) Report() Report {
	return NewReport(float64(s.Win), float64(s.Success))
}

func (s Statistic) String() string {
	var sb strings.Builder
	r := s.Report()
	fmt.Fprintf(&sb, "win: %d\n", s.Win)
	fmt.Fprintf(&sb, "total: %d\n", s.Success)
	fmt.Fprintf(&sb, "tried: %d\n", s.Total)
	fmt.Fprintf(&sb, "avg opened: %.3f\n", s.AvgOpened())
	fmt.Fprintf(&sb, "win ratio: %.3f%% mean, %.3e (%.3f%%) stdev, %.3e (%.3f%%) sem",
		r.Mean*100, r.StdDev, r.StdDevPct, r.StdErrMean, r.StdErrMeanPct)
	return sb.String()
}

// observer feeds game outcomes into a worker-local statistic.
type observer struct {
	stat *Statistic
}

func (o observer) OnEnd(c *game.Content, out game.Outcome) {
	o.stat.Record(c, out)
}
