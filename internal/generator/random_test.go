package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// scriptedSource replays fixed draws and fails the test on a draw outside
// the requested range.
type scriptedSource struct {
	t     *testing.T
	draws []int
	next  int
}

func (s *scriptedSource) Number(min, max int) int {
	s.t.Helper()
	if s.next >= len(s.draws) {
		s.t.Fatalf("scripted source exhausted after %d draws", s.next)
	}
	v := s.draws[s.next]
	s.next++
	if v < min || v > max {
		s.t.Fatalf("scripted draw %d outside [%d, %d]", v, min, max)
	}
	return v
}

// rangeRecorder returns the lower bound of every draw and records the range.
type rangeRecorder struct {
	ranges [][2]int
}

func (r *rangeRecorder) Number(min, max int) int {
	r.ranges = append(r.ranges, [2]int{min, max})
	return min
}

// constSource always returns the same value clamped into range.
type constSource int

func (c constSource) Number(min, max int) int {
	v := int(c)
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func TestWeightedChoice_ThresholdIsSmallerWeight(t *testing.T) {
	tests := []struct {
		name string
		a, b Weighted[string]
		draw int
		want string
	}{
		{"favor b, draw at threshold", Weighted[string]{"A", 10}, Weighted[string]{"B", 90}, 10, "A"},
		{"favor b, draw above threshold", Weighted[string]{"A", 10}, Weighted[string]{"B", 90}, 11, "B"},
		{"favor b, lowest draw", Weighted[string]{"A", 10}, Weighted[string]{"B", 90}, 1, "A"},
		{"smaller weight on b, draw at threshold", Weighted[string]{"A", 90}, Weighted[string]{"B", 10}, 10, "A"},
		{"smaller weight on b, draw above threshold", Weighted[string]{"A", 90}, Weighted[string]{"B", 10}, 50, "B"},
		{"equal weights", Weighted[string]{"A", 50}, Weighted[string]{"B", 50}, 50, "A"},
		{"equal weights above", Weighted[string]{"A", 50}, Weighted[string]{"B", 50}, 51, "B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedSource{t: t, draws: []int{tt.draw}}
			if got := WeightedChoice(src, tt.a, tt.b); got != tt.want {
				t.Errorf("WeightedChoice(draw=%d) = %s, want %s", tt.draw, got, tt.want)
			}
		})
	}
}

func TestWeightedChoice_DrawsFromOneToHundred(t *testing.T) {
	rec := &rangeRecorder{}
	WeightedChoice(rec, Weighted[bool]{true, 10}, Weighted[bool]{false, 90})
	if len(rec.ranges) != 1 || rec.ranges[0] != [2]int{1, 100} {
		t.Errorf("expected a single draw in [1, 100], got %v", rec.ranges)
	}
}

func TestRandomDate_Format(t *testing.T) {
	src := &scriptedSource{t: t, draws: []int{2009, 3, 7}}
	if got := RandomDate(src, 1995, 2010); got != "2009-03-07" {
		t.Errorf("expected 2009-03-07, got %s", got)
	}
}

func TestRandomDate_FebruaryIgnoresLeapYears(t *testing.T) {
	if day := recordDayRange(t, 2024, 2); day != [2]int{1, 28} {
		t.Errorf("expected February day range [1, 28] in 2024, got %v", day)
	}
}

// recordDayRange runs RandomDate with fixed year and month and returns the
// range requested for the day.
func recordDayRange(t *testing.T, year, month int) [2]int {
	t.Helper()
	rec := &fixedPrefixRecorder{prefix: []int{year, month}}
	RandomDate(rec, year, year)
	if len(rec.ranges) != 3 {
		t.Fatalf("expected 3 draws, got %d", len(rec.ranges))
	}
	return rec.ranges[2]
}

type fixedPrefixRecorder struct {
	prefix []int
	ranges [][2]int
}

func (r *fixedPrefixRecorder) Number(min, max int) int {
	r.ranges = append(r.ranges, [2]int{min, max})
	if i := len(r.ranges) - 1; i < len(r.prefix) {
		return r.prefix[i]
	}
	return min
}

func TestRandomDate_MonthLengths(t *testing.T) {
	want := map[int]int{1: 31, 2: 28, 4: 30, 9: 30, 12: 31}
	for month, days := range want {
		if got := recordDayRange(t, 2000, month); got != [2]int{1, days} {
			t.Errorf("month %d: expected [1, %d], got %v", month, days, got)
		}
	}
}

func TestPhone(t *testing.T) {
	src := &scriptedSource{t: t, draws: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}}
	if got := Phone(src); got != "9123456789" {
		t.Errorf("expected 9123456789, got %s", got)
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	shuffle(NewSource(7), items)

	seen := make(map[int]bool)
	for _, v := range items {
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Errorf("expected all 8 values to survive shuffle, got %v", items)
	}
}

func TestShuffle_WalksFromEnd(t *testing.T) {
	rec := &rangeRecorder{}
	items := []string{"a", "b", "c", "d"}
	shuffle(rec, items)

	want := [][2]int{{0, 3}, {0, 2}, {0, 1}}
	if fmt.Sprint(rec.ranges) != fmt.Sprint(want) {
		t.Errorf("expected draws %v, got %v", want, rec.ranges)
	}
	// always drawing 0 rotates the slice left
	if strings.Join(items, "") != "bcda" {
		t.Errorf("unexpected order %v", items)
	}
}

func TestNewSource_Deterministic(t *testing.T) {
	a, b := NewSource(99), NewSource(99)
	for i := 0; i < 50; i++ {
		if x, y := a.Number(0, 1000), b.Number(0, 1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestNationalCode_RetriesCollisions(t *testing.T) {
	ledger := NewMemoryLedger()
	ledger.Reserve(context.Background(), "0000000000")

	draws := make([]int, 0, 20)
	for i := 0; i < 10; i++ {
		draws = append(draws, 0)
	}
	for i := 0; i < 10; i++ {
		draws = append(draws, 1)
	}

	g := &Generator{rnd: &scriptedSource{t: t, draws: draws}, ledger: ledger, logger: zerolog.Nop(), opts: DefaultOptions()}
	code, err := g.NationalCode(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "1111111111" {
		t.Errorf("expected 1111111111, got %s", code)
	}
	if ledger.Len() != 2 {
		t.Errorf("expected 2 codes in ledger, got %d", ledger.Len())
	}
}

func TestNationalCode_Exhausted(t *testing.T) {
	ledger := NewMemoryLedger()
	ledger.Reserve(context.Background(), "5555555555")

	opts := DefaultOptions()
	opts.MaxCodeAttempts = 3
	g := &Generator{rnd: constSource(5), ledger: ledger, logger: zerolog.Nop(), opts: opts}

	_, err := g.NationalCode(context.Background())
	if !errors.Is(err, ErrUniquenessExhausted) {
		t.Errorf("expected ErrUniquenessExhausted, got %v", err)
	}
}

type failingLedger struct{}

func (failingLedger) Reserve(context.Context, string) (bool, error) {
	return false, errors.New("ledger offline")
}

func TestNationalCode_LedgerError(t *testing.T) {
	g := &Generator{rnd: constSource(1), ledger: failingLedger{}, logger: zerolog.Nop(), opts: DefaultOptions()}
	if _, err := g.NationalCode(context.Background()); err == nil {
		t.Error("expected ledger error to propagate")
	}
}
