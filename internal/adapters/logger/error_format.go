package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// messager is implemented by zerr errors; Message omits the wrapped chain.
type messager interface {
	Message() string
}

type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain until the first error that is not a zerr error.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		entry := ErrorEntry{Message: m.Message()}
		if md, ok := current.(metadataer); ok {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}
	return entries
}

func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string
	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")
		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			lines = append(lines, formatMetadata(entry.Metadata, "       ")...)
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
		lines = append(lines, formatMetadata(entry.Metadata, "      ")...)
	}
	return strings.Join(lines, "\n")
}

// formatMetadata lists md sorted by key. Subject keys are left to the handler.
func formatMetadata(md map[string]any, indent string) []string {
	lines := make([]string, 0, len(md))
	for _, key := range slices.Sorted(maps.Keys(md)) {
		if isSubjectKey(key) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, md[key]))
	}
	return lines
}

func isSubjectKey(key string) bool {
	return key == ModelKey || key == ProjectKey || key == AddressKey
}

// subjectAttrs returns the subject keys of the chain as slog arguments.
// The outermost link carrying a key wins.
func subjectAttrs(entries []ErrorEntry) []any {
	seen := make(map[string]bool, 3)
	var args []any
	for _, entry := range entries {
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			if !isSubjectKey(key) || seen[key] {
				continue
			}
			seen[key] = true
			args = append(args, slog.String(key, fmt.Sprint(entry.Metadata[key])))
		}
	}
	return args
}
