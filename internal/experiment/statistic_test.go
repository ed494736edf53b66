package experiment

import (
	"math"
	"strings"
	"testing"

	"github.com/peterkuimelis/onirim/internal/game"
)

func TestStatisticRecordAndAdd(t *testing.T) {
	var a, b Statistic
	won := &game.Content{Opened: make([]game.Card, 8)}
	lost := &game.Content{Opened: make([]game.Card, 3)}

	a.Record(won, game.OutcomeWin)
	a.Record(lost, game.OutcomeLose)
	b.Record(lost, game.OutcomeLose)
	b.RecordFailure()

	a.Add(b)
	want := Statistic{Win: 1, Lose: 2, Success: 3, Total: 4, Opened: 14}
	if a != want {
		t.Errorf("statistic = %+v, want %+v", a, want)
	}
	if got := a.WinRatio(); math.Abs(got-1.0/3) > 1e-9 {
		t.Errorf("WinRatio = %v, want 1/3", got)
	}
}

func TestReport(t *testing.T) {
	r := NewReport(25, 100)
	if r.Mean != 0.25 {
		t.Errorf("mean = %v", r.Mean)
	}
	wantStd := math.Sqrt(0.25 * 0.75)
	if math.Abs(r.StdDev-wantStd) > 1e-12 {
		t.Errorf("stddev = %v, want %v", r.StdDev, wantStd)
	}
	if math.Abs(r.StdErrMean-wantStd/10) > 1e-12 {
		t.Errorf("sem = %v, want %v", r.StdErrMean, wantStd/10)
	}
	if math.Abs(r.StdDevPct-wantStd/0.25*100) > 1e-9 {
		t.Errorf("stddev pct = %v", r.StdDevPct)
	}

	if zero := NewReport(0, 0); zero != (Report{}) {
		t.Errorf("empty report = %+v, want zero", zero)
	}
}

func TestStatisticString(t *testing.T) {
	s := Statistic{Win: 1, Lose: 3, Success: 4, Total: 5, Opened: 12}
	out := s.String()
	for _, want := range []string{"win: 1", "total: 4", "tried: 5", "avg opened: 3.000", "win ratio: 25.000% mean"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q:\n%s", want, out)
		}
	}
}
