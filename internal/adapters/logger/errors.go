package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrorEntry is one layer of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// zerrLayer matches *zerr.Error without depending on its concrete type.
type zerrLayer interface {
	Message() string
	Metadata() map[string]any
}

// collectErrorEntries walks err's chain. zerr layers contribute their own
// message and metadata; the first foreign error contributes its full text and
// ends the walk.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var carried map[string]any

	for current := err; current != nil; {
		layer, ok := current.(zerrLayer)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: carried})
			break
		}

		metadata := layer.Metadata()
		if layer.Message() == "" {
			// A metadata-only layer; attach its metadata to the next message.
			if carried == nil {
				carried = map[string]any{}
			}
			maps.Copy(carried, metadata)
			current = errors.Unwrap(current)
			continue
		}
		if carried != nil {
			maps.Copy(metadata, carried)
			carried = nil
		}
		entries = append(entries, ErrorEntry{Message: layer.Message(), Metadata: metadata})
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders entries as a main error followed by an indented
// "Caused by" list.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		first, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			first, indent = "    → ", "      "
		}

		lines = append(lines, first+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
