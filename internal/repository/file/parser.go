package file

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"wordbook/internal/domain"
)

const (
	commentPrefix = "#"
	utf8BOM       = "\ufeff"
	maxLineSize   = 1 << 20
)

// ParseEntries reads one entry per line and applies the dedup policy.
// Blank, comment and malformed lines are skipped silently.
func ParseEntries(r io.Reader, mode domain.DedupMode) ([]domain.Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var entries []domain.Entry
	first := true
	for scanner.Scan() {
		raw := scanner.Text()
		if first {
			raw = strings.TrimPrefix(raw, utf8BOM)
			first = false
		}

		entry, ok := parseLine(raw)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	return dedup(entries, mode), nil
}

// parseLine splits on tab when present, otherwise on the first whitespace run.
// Extra tab fields belong to the definition.
func parseLine(raw string) (domain.Entry, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, commentPrefix) {
		return domain.Entry{}, false
	}

	var term, def string
	if strings.Contains(line, "\t") {
		parts := strings.Split(line, "\t")
		term = strings.TrimSpace(parts[0])
		def = strings.TrimSpace(strings.Join(parts[1:], "\t"))
	} else {
		i := strings.IndexFunc(line, unicode.IsSpace)
		if i < 0 {
			return domain.Entry{}, false
		}
		term = strings.TrimSpace(line[:i])
		def = strings.TrimSpace(line[i:])
	}

	if term == "" || def == "" {
		return domain.Entry{}, false
	}
	return domain.Entry{Term: term, Definition: def}, true
}

func dedup(entries []domain.Entry, mode domain.DedupMode) []domain.Entry {
	switch mode {
	case domain.DedupByTerm:
		seen := make(map[string]struct{}, len(entries))
		out := make([]domain.Entry, 0, len(entries))
		for _, e := range entries {
			if _, ok := seen[e.Term]; ok {
				continue
			}
			seen[e.Term] = struct{}{}
			out = append(out, e)
		}
		return out
	case domain.DedupByPair:
		seen := make(map[domain.Entry]struct{}, len(entries))
		out := make([]domain.Entry, 0, len(entries))
		for _, e := range entries {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
		return out
	default:
		return entries
	}
}

// WriteEntries writes entries in the tab-delimited line format
func WriteEntries(w io.Writer, entries []domain.Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.WriteString(e.Line() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
