// Package naming maps record keys between the application convention (camelCase)
// and the storage convention (snake_case).
package naming

import "strings"

// Record is a single row keyed by column or attribute name.
type Record = map[string]any

// NestedCollections are the joined child collections of a sales invoice. Their keys
// already use application naming and their elements are converted by the caller.
var NestedCollections = []string{"paymentHistory", "items"}

// ToStorage rewrites every key from camelCase to snake_case. Values are not touched.
func ToStorage(r Record) Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[SnakeCase(k)] = v
	}
	return out
}

// ToApplication rewrites every key from snake_case to camelCase, except the keys
// listed in passthrough which are copied as they are.
func ToApplication(r Record, passthrough ...string) Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		if contains(passthrough, k) {
			out[k] = v
			continue
		}
		out[CamelCase(k)] = v
	}
	return out
}

// SnakeCase inserts "_" before each ASCII upper-case letter and lower-cases it.
func SnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte('_')
			b.WriteByte(c + ('a' - 'A'))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// CamelCase replaces "_x" with "X" for any word character x. A trailing "_" is kept.
func CamelCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' && i+1 < len(s) && isWord(s[i+1]) {
			next := s[i+1]
			if next >= 'a' && next <= 'z' {
				next -= 'a' - 'A'
			}
			b.WriteByte(next)
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isWord(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func contains(list []string, k string) bool {
	for _, s := range list {
		if s == k {
			return true
		}
	}
	return false
}
