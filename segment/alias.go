// Package segment builds the grammar fragments that make up a command:
// literal route segments, positional argument segments and option segments.
//
// Segments are immutable once built. The command grammar that embeds them is
// assembled by the registry, which knows the sibling routes an argument must
// not consume.
package segment

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pgup/dispatch/pattern"
	"golang.org/x/text/cases"
)

// AliasSet is an ordered set of names. Aliases are unique after case folding
// and ordered by descending length, then lexicographically.
type AliasSet []string

var word = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N}_-]*$`)

// parseAliases splits a '|' separated spec after removing whitespace and
// normalizes every part. It returns the offending part when a part is
// malformed or duplicates another one after case folding.
func parseAliases(spec string, normalize func(string) (string, bool)) (AliasSet, string, error) {
	cleaned := pattern.RemoveWhitespace(spec)
	if cleaned == "" {
		return nil, cleaned, errMalformed
	}

	parts := strings.Split(cleaned, "|")
	aliases := make(AliasSet, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		name, ok := normalize(part)
		if !ok {
			return nil, part, errMalformed
		}

		key := fold(name)
		if _, dup := seen[key]; dup {
			return nil, part, errDuplicate
		}
		seen[key] = struct{}{}
		aliases = append(aliases, name)
	}
	sortAliases(aliases)

	return aliases, "", nil
}

var (
	errMalformed = errors.New("malformed alias")
	errDuplicate = errors.New("duplicate alias")
)

func sortAliases(aliases []string) {
	sort.SliceStable(aliases, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(aliases[i]), utf8.RuneCountInString(aliases[j])
		if li != lj {
			return li > lj
		}
		return aliases[i] < aliases[j]
	})
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// Primary returns the preferred (longest) alias.
func (a AliasSet) Primary() string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}

// String joins the aliases with '|'.
func (a AliasSet) String() string {
	return strings.Join(a, "|")
}

// Contains reports whether s is one of the aliases, ignoring case.
func (a AliasSet) Contains(s string) bool {
	f := fold(s)
	for _, alias := range a {
		if fold(alias) == f {
			return true
		}
	}

	return false
}

// Overlap returns the first alias of a that is also in b.
func (a AliasSet) Overlap(b AliasSet) (string, bool) {
	for _, alias := range a {
		if b.Contains(alias) {
			return alias, true
		}
	}

	return "", false
}

// Equal reports whether both sets hold the same aliases, ignoring case.
func (a AliasSet) Equal(b AliasSet) bool {
	if len(a) != len(b) {
		return false
	}
	for _, alias := range a {
		if !b.Contains(alias) {
			return false
		}
	}

	return true
}

// Merge returns the union of the sets, deduplicated and ordered.
func Merge(sets ...AliasSet) AliasSet {
	var merged AliasSet
	seen := map[string]struct{}{}
	for _, set := range sets {
		for _, alias := range set {
			key := fold(alias)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, alias)
		}
	}
	sortAliases(merged)

	return merged
}
