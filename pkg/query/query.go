// Package query derives displayed lists from record snapshots. Nothing here
// mutates its input; every result is a fresh slice.
package query

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortExpiryAsc  SortKey = "expiry_asc"
	SortExpiryDesc SortKey = "expiry_desc"
	SortNameAsc    SortKey = "name_asc"
	SortNameDesc   SortKey = "name_desc"
	SortNone       SortKey = ""

	// All bypasses selector filtering.
	All = "all"

	// Ungrouped is the group name for records without a category.
	Ungrouped = "Other"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortExpiryAsc, SortExpiryDesc, SortNameAsc, SortNameDesc, SortNone:
		return k, true
	}
	return SortNone, false
}

// Field extracts one searchable or selectable string from a record.
type Field[T any] func(T) string

// FilterByText keeps records where any field contains query, ignoring
// case. An empty query keeps everything in order.
func FilterByText[T any](records []T, query string, fields ...Field[T]) []T {
	if query == "" {
		return slices.Clone(records)
	}
	q := strings.ToLower(query)
	out := make([]T, 0, len(records))
	for _, r := range records {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(r)), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// FilterBySelector keeps records whose field equals selector exactly.
// An empty selector or All keeps everything.
func FilterBySelector[T any](records []T, selector string, field Field[T]) []T {
	if IsAll(selector) {
		return slices.Clone(records)
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if field(r) == selector {
			out = append(out, r)
		}
	}
	return out
}

func IsAll(selector string) bool {
	return selector == "" || strings.EqualFold(selector, All)
}

// Filter is FilterByText AND FilterBySelector.
func Filter[T any](records []T, query string, fields []Field[T], selector string, field Field[T]) []T {
	return FilterBySelector(FilterByText(records, query, fields...), selector, field)
}

// Accessors tell Sort where a record keeps its name and expiry.
type Accessors[T any] struct {
	Name   func(T) string
	Expiry func(T) time.Time
}

// Sort returns a stably sorted copy of records. Names compare with English
// collation. An empty key, or a key whose accessor is missing, returns the
// records in their original order.
func Sort[T any](records []T, key SortKey, acc Accessors[T]) []T {
	out := slices.Clone(records)

	var cmp func(a, b T) int
	switch key {
	case SortExpiryAsc, SortExpiryDesc:
		if acc.Expiry == nil {
			return out
		}
		cmp = func(a, b T) int { return acc.Expiry(a).Compare(acc.Expiry(b)) }
	case SortNameAsc, SortNameDesc:
		if acc.Name == nil {
			return out
		}
		col := collate.New(language.English, collate.IgnoreCase)
		cmp = func(a, b T) int { return col.CompareString(acc.Name(a), acc.Name(b)) }
	default:
		return out
	}
	if key == SortExpiryDesc || key == SortNameDesc {
		asc := cmp
		cmp = func(a, b T) int { return asc(b, a) }
	}

	slices.SortStableFunc(out, cmp)
	return out
}

type Group[T any] struct {
	Key     string
	Records []T
}

// GroupBy partitions records by field, keeping groups in first-seen order
// and records in input order within each group.
func GroupBy[T any](records []T, field Field[T]) []Group[T] {
	index := make(map[string]int)
	var groups []Group[T]
	for _, r := range records {
		key := field(r)
		if key == "" {
			key = Ungrouped
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group[T]{Key: key})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}
