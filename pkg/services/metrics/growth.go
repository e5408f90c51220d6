package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/fin-tools/finsight/pkg/services/monthkey"
)

// CalculateGrowth compares the two most recently populated months of a
// record and returns the guarded percentage change, rounded to 2 decimals.
// This is the single implementation of the growth guard; call sites must not
// reimplement it.
//
// Guard conventions: fewer than two populated months is not comparable and
// yields {0, false}. A previous value of zero with positive activity after
// it counts as growth of 100 ("started from nothing"); with negative
// activity, -100. Degenerate operands (both zero, NaN, Inf) yield {0, false}
// so downstream formatting never renders garbage.
func CalculateGrowth(rec domain.Record) domain.Growth {
	type point struct {
		date  time.Time
		value float64
	}

	points := make([]point, 0, len(rec.Months))
	for key, value := range rec.Months {
		date, ok := monthkey.Parse(key)
		if !ok {
			continue
		}
		points = append(points, point{date: date, value: value})
	}

	if len(points) < 2 {
		return domain.Growth{}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].date.Before(points[j].date) })

	previous := points[len(points)-2].value
	latest := points[len(points)-1].value

	if !isFinite(previous) || !isFinite(latest) {
		return domain.Growth{}
	}

	if previous == 0 {
		switch {
		case latest > 0:
			return domain.Growth{Percentage: 100, IsValid: true}
		case latest < 0:
			return domain.Growth{Percentage: -100, IsValid: true}
		}
		return domain.Growth{}
	}

	percentage := ((latest - previous) / previous) * 100
	if !isFinite(percentage) {
		return domain.Growth{}
	}

	return domain.Growth{
		Percentage: math.Round(percentage*100) / 100,
		IsValid:    true,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
