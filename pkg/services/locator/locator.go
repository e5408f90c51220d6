// Package locator resolves human-readable line-item names to records inside
// a dataset section. Producers are inconsistent about casing, accents and
// wording, so matching always runs on a normalized form and call sites can
// supply an explicit match rule for the known fuzzy cases.
package locator

import (
	"context"
	"strings"
	"unicode"

	"github.com/fin-tools/finsight/pkg/models/domain"
	"github.com/rs/zerolog"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize produces the canonical comparison form of a record name:
// trimmed, accents folded away, upper-cased.
func Normalize(s string) string {
	s = strings.TrimSpace(s)

	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(folder, s); err == nil {
		s = folded
	}
	return strings.ToUpper(s)
}

// Matcher decides whether a normalized record name satisfies a lookup.
// Building matchers through the constructors below keeps the fuzzy-matching
// rules in one auditable place instead of inline string checks at call sites.
type Matcher func(normalized string) bool

// Exact matches the normalized form of name.
func Exact(name string) Matcher {
	want := Normalize(name)
	return func(normalized string) bool { return normalized == want }
}

// AnyOf matches any of the known spelling variants of one concept.
func AnyOf(names ...string) Matcher {
	wants := make([]string, len(names))
	for i, n := range names {
		wants[i] = Normalize(n)
	}
	return func(normalized string) bool {
		for _, w := range wants {
			if normalized == w {
				return true
			}
		}
		return false
	}
}

// Prefix matches names starting with the normalized prefix.
func Prefix(prefix string) Matcher {
	want := Normalize(prefix)
	return func(normalized string) bool { return strings.HasPrefix(normalized, want) }
}

// Contains matches names containing the normalized fragment.
func Contains(fragment string) Matcher {
	want := Normalize(fragment)
	return func(normalized string) bool { return strings.Contains(normalized, want) }
}

type options struct {
	matcher Matcher
}

type Option func(*options)

// WithMatcher overrides the default exact-normalized match rule.
func WithMatcher(m Matcher) Option {
	return func(o *options) { o.matcher = m }
}

// Find returns the first record of the section whose normalized name
// satisfies the match rule, or nil when nothing matches. A miss logs the
// requested name alongside the normalized names actually present so shape
// differences across tenants are diagnosable; it never fails. Callers own
// the fallback value and must not propagate the nil.
func Find(ctx context.Context, records []domain.Record, want string, opts ...Option) *domain.Record {
	o := options{matcher: Exact(want)}
	for _, opt := range opts {
		opt(&o)
	}

	available := make([]string, 0, len(records))
	for i := range records {
		normalized := Normalize(records[i].Name)
		if o.matcher(normalized) {
			found := records[i]
			return &found
		}
		available = append(available, normalized)
	}

	zerolog.Ctx(ctx).Debug().
		Str("requested", want).
		Strs("available", available).
		Msg("record not found in section")
	return nil
}
