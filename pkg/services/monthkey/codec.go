// Package monthkey encodes and decodes the value_<month-abbrev>_<year> field
// naming convention used by every monthly record the accounting backend emits.
package monthkey

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fin-tools/finsight/pkg/models/domain"
)

const keyPrefix = "value"

// The feed is inconsistent about month abbreviations: older tenants emit
// Portuguese ones (fev, abr, ago, set, out, dez), newer ones English. Both
// decode; Format always emits the English form.
var monthAbbrevs = map[string]time.Month{
	"jan": time.January,
	"feb": time.February, "fev": time.February,
	"mar": time.March,
	"apr": time.April, "abr": time.April,
	"may": time.May, "mai": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August, "ago": time.August,
	"sep": time.September, "set": time.September,
	"oct": time.October, "out": time.October,
	"nov": time.November,
	"dec": time.December, "dez": time.December,
}

// Parse decodes a month key into the first day of that month (UTC). It
// returns false for any string that does not match the fixed three-part
// shape, so unrelated fields on the same record are skipped silently.
func Parse(key string) (time.Time, bool) {
	parts := strings.Split(key, "_")
	if len(parts) != 3 || parts[0] != keyPrefix {
		return time.Time{}, false
	}

	month, ok := monthAbbrevs[strings.ToLower(parts[1])]
	if !ok {
		return time.Time{}, false
	}

	if len(parts[2]) != 4 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}

// Format renders the canonical key for a date's month: lower-case English
// abbreviation, 4-digit year.
func Format(t time.Time) string {
	return fmt.Sprintf("%s_%s_%04d", keyPrefix, strings.ToLower(t.Format("Jan")), t.Year())
}

// Label renders a month for display, e.g. "Feb 2025".
func Label(t time.Time) string {
	return t.Format("Jan 2006")
}

// representativeSections are scanned in priority order when deriving the
// months actually present in a dataset.
var representativeSections = []string{
	domain.SectionBilling,
	domain.SectionCostPercentages,
	domain.SectionResultEvolution,
}

// ListAvailable returns the distinct months present in the dataset, sorted
// ascending. It scans the first representative section that carries any month
// keys; an empty result means no temporal bounds are known, and callers must
// not substitute the current date.
func ListAvailable(ds domain.Dataset) []domain.Month {
	for _, section := range representativeSections {
		months := collectMonths(ds.Section(section))
		if len(months) > 0 {
			return months
		}
	}
	return nil
}

// LatestActiveMonth returns the most recent month with a nonzero value in the
// representative sections. It is the explicit reference-date anchor used in
// place of the wall clock everywhere a "current period" is needed.
func LatestActiveMonth(ds domain.Dataset) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, section := range representativeSections {
		for _, rec := range ds.Section(section) {
			for key, value := range rec.Months {
				if value == 0 {
					continue
				}
				date, ok := Parse(key)
				if !ok {
					continue
				}
				if !found || date.After(latest) {
					latest = date
					found = true
				}
			}
		}
		if found {
			return latest, true
		}
	}
	return time.Time{}, false
}

func collectMonths(records []domain.Record) []domain.Month {
	seen := make(map[time.Time]string)
	for _, rec := range records {
		for key := range rec.Months {
			date, ok := Parse(key)
			if !ok {
				continue
			}
			if _, dup := seen[date]; !dup {
				seen[date] = key
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}

	months := make([]domain.Month, 0, len(seen))
	for date, key := range seen {
		months = append(months, domain.Month{Key: key, Label: Label(date), Date: date})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Date.Before(months[j].Date) })
	return months
}
