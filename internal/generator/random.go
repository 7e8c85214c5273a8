package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// Source draws uniform integers in the closed range [min, max].
type Source interface {
	Number(min, max int) int
}

// NewSource returns a seeded source. Equal seeds replay equal runs; seed 0
// draws a random seed.
func NewSource(seed uint64) Source {
	return gofakeit.New(seed)
}

// shuffle permutes items in place, walking from the end of the slice.
func shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.Number(0, i)
		items[i], items[j] = items[j], items[i]
	}
}

func digits(src Source, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteString(strconv.Itoa(src.Number(0, 9)))
	}
	return b.String()
}

// Phone returns a mobile number: a leading 9 followed by nine random digits.
// Phones are not tracked for uniqueness.
func Phone(src Source) string {
	return "9" + digits(src, 9)
}

// monthDays ignores leap years; February always has 28 days.
var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// RandomDate returns an ISO date with a uniform year in [startYear, endYear],
// a uniform month, and a uniform day within that month.
func RandomDate(src Source, startYear, endYear int) string {
	year := src.Number(startYear, endYear)
	month := src.Number(1, 12)
	day := src.Number(1, monthDays[month-1])
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// Weighted is a candidate value with its percentage weight.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// WeightedChoice draws from [1, 100] and returns a.Value when the draw does
// not exceed the smaller of the two weights, b.Value otherwise. The threshold
// is always the smaller weight, whichever side holds it.
func WeightedChoice[T any](src Source, a, b Weighted[T]) T {
	threshold := a.Weight
	if b.Weight < threshold {
		threshold = b.Weight
	}
	if src.Number(1, 100) <= threshold {
		return a.Value
	}
	return b.Value
}
