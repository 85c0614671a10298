package logger

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrorEntry is one level of a rendered error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// detailer matches *zerr.Error without depending on its concrete type.
type detailer interface {
	Message() string
	Metadata() map[string]any
}

// collectErrorEntries flattens err into one entry per message. Joined errors contribute
// the entries of each member in order. Metadata of wrappers without a message is carried
// over to the next entry.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any

	emit := func(e ErrorEntry) {
		if len(pending) > 0 {
			if e.Metadata == nil {
				e.Metadata = make(map[string]any, len(pending))
			}
			maps.Copy(e.Metadata, pending)
			pending = nil
		}
		entries = append(entries, e)
	}

	for current := err; current != nil; {
		if joined, ok := current.(interface{ Unwrap() []error }); ok {
			for _, member := range joined.Unwrap() {
				for _, e := range collectErrorEntries(member) {
					emit(e)
				}
			}
			break
		}

		d, ok := current.(detailer)
		if !ok {
			emit(ErrorEntry{Message: current.Error()})
			break
		}

		if d.Message() == "" {
			if md := d.Metadata(); len(md) > 0 {
				if pending == nil {
					pending = make(map[string]any, len(md))
				}
				maps.Copy(pending, md)
			}
		} else {
			emit(ErrorEntry{Message: d.Message(), Metadata: d.Metadata()})
		}

		next, ok := current.(interface{ Unwrap() error })
		if !ok {
			break
		}
		current = next.Unwrap()
	}

	return entries
}

// formatErrorEntries renders entries as a headline followed by a "Caused by" list.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		head, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent = "    → ", "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, l := range msgLines[1:] {
			lines = append(lines, indent+l)
		}
		for _, k := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.Metadata[k]))
		}
	}

	return strings.Join(lines, "\n")
}
