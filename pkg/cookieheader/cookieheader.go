// Package cookieheader parses raw Cookie header strings of the form
// "name1=value1; name2=value2" into ordered name/value pairs.
package cookieheader

import "strings"

// Pair is a single name/value pair extracted from a Cookie header.
type Pair struct {
	Name  string
	Value string
}

// Parse splits a raw Cookie header into ordered pairs.
//
// Segments are separated by ';' and trimmed. Each segment is split on the
// first '=' only, so values may themselves contain '='. Segments without '='
// and pairs with an empty name or empty value after trimming are skipped.
// An empty or all-malformed header yields no pairs, which is not an error.
func Parse(header string) []Pair {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil
	}

	var pairs []Pair

	for _, segment := range strings.Split(header, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		name, value, found := strings.Cut(segment, "=")
		if !found {
			continue
		}

		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}

		pairs = append(pairs, Pair{Name: name, Value: value})
	}

	return pairs
}
