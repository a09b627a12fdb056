package redis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/db"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
)

// buildFilter compiles a filter spec into an FT query string. Fields are
// emitted in sorted order so the produced query is deterministic. Returns ""
// for an empty spec; callers substitute "*".
func buildFilter(spec filter.Spec) string {
	var parts []string

	for _, field := range sortedKeys(spec.Matches()) {
		parts = append(parts, buildTagFilter(field, spec.Matches()[field]))
	}

	for _, field := range sortedKeys(spec.AnyOf()) {
		values := spec.AnyOf()[field]
		escaped := make([]string, len(values))
		for i, v := range values {
			escaped[i] = tagEscaper.Replace(v)
		}
		parts = append(parts, fmt.Sprintf("@%s:{%s}", field, strings.Join(escaped, "|")))
	}

	// All-of: one conjunct per required value.
	for _, field := range sortedKeys(spec.AllOf()) {
		for _, v := range spec.AllOf()[field] {
			parts = append(parts, buildTagFilter(field, v))
		}
	}

	for _, field := range sortedKeys(spec.Ranges()) {
		parts = append(parts, buildNumericFilter(field, spec.Ranges()[field]))
	}

	if spec.ActiveOnly() {
		parts = append(parts, buildTagFilter(db.FieldActive, "1"))
	}

	// Availability envelope prefilter; exact window membership is verified
	// on fetched records (the window list itself is not indexable on hash).
	if at := spec.OpenAt(); at != nil {
		t := at.Unix()
		parts = append(parts, fmt.Sprintf("@%s:[-inf %d]", db.FieldOpenStart, t))
		parts = append(parts, fmt.Sprintf("@%s:[%d +inf]", db.FieldOpenEnd, t))
	}

	return strings.Join(parts, " ")
}

// filterOrAll returns the compiled filter, or the match-all query.
func filterOrAll(spec filter.Spec) string {
	if f := buildFilter(spec); f != "" {
		return f
	}
	return "*"
}

func buildTagFilter(key, value string) string {
	return fmt.Sprintf("@%s:{%s}", key, tagEscaper.Replace(value))
}

func buildNumericFilter(key string, r filter.Range) string {
	minBound := "-inf"
	maxBound := "+inf"
	if r.Min() != nil {
		minBound = fmt.Sprintf("%g", *r.Min())
	}
	if r.Max() != nil {
		maxBound = fmt.Sprintf("%g", *r.Max())
	}
	return fmt.Sprintf("@%s:[%s %s]", key, minBound, maxBound)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// tagEscaper escapes RediSearch TAG special characters.
var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	" ", "\\ ",
)
