// Package query contains the dialect independent parts of the query template builders.
// Nothing in here performs any I/O.
package query

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/diwise/graph-explorer/pkg/graph/ids"
	"github.com/diwise/graph-explorer/pkg/graph/types"
)

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// EscapeString escapes a value for use inside a double quoted string literal
func EscapeString(s string) string {
	return stringEscaper.Replace(s)
}

// Quote returns s as an escaped, double quoted string literal
func Quote(s string) string {
	return `"` + EscapeString(s) + `"`
}

const regexMetaCharacters string = `\.+*?()|[]{}^$`

// EscapeRegex escapes every regular expression metacharacter in s
func EscapeRegex(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(regexMetaCharacters, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IDLiteral renders numeric identifiers as bare numbers followed by numericSuffix and
// everything else as a quoted string
func IDLiteral[T ids.ID](id T, numericSuffix string) string {
	switch n := ids.Decode(id).(type) {
	case int64:
		return strconv.FormatInt(n, 10) + numericSuffix
	case json.Number:
		return n.String() + numericSuffix
	}
	return Quote(ids.Raw(id))
}

// IDLiterals renders a comma separated list of identifier literals
func IDLiterals[T ids.ID](identifiers []T, numericSuffix string) string {
	literals := make([]string, 0, len(identifiers))
	for _, id := range identifiers {
		literals = append(literals, IDLiteral(id, numericSuffix))
	}
	return strings.Join(literals, ",")
}

// QuoteAll quotes every element and joins them with a comma
func QuoteAll(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, Quote(v))
	}
	return strings.Join(quoted, ",")
}

// Window converts paging into a half open [start, end) interval. It returns false
// when no limit is requested and the paging clause should be omitted.
func Window(p types.Paging) (start, end int, ok bool) {
	if p.Limit <= 0 {
		return 0, 0, false
	}

	start = max(p.Offset, 0)
	return start, start + p.Limit, true
}

// Batch splits items into consecutive chunks of at most size elements
func Batch[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}

	batches := make([][]T, 0, (len(items)+max(size, 1)-1)/max(size, 1))
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}

	return batches
}

// Distinct removes duplicates and empty strings, keeping the first occurrence
func Distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// DistinctIDs removes duplicates and empty identifiers, keeping the first occurrence
func DistinctIDs[T ids.ID](identifiers []T) []T {
	seen := make(map[T]struct{}, len(identifiers))
	result := make([]T, 0, len(identifiers))
	for _, id := range identifiers {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// SplitTypes explodes composite type names and removes duplicates
func SplitTypes(typeNames []string) []string {
	return Distinct(types.SplitLabels(typeNames...))
}
