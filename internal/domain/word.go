package domain

import "fmt"

// Entry represents a term-definition pair from a vocabulary or wrong-word book
type Entry struct {
	Term       string
	Definition string
}

// Line returns the tab-delimited storage form of the entry
func (e Entry) Line() string {
	return e.Term + "\t" + e.Definition
}

// DedupMode controls which entries are treated as duplicates on load
type DedupMode string

const (
	DedupByTerm DedupMode = "term"
	DedupByPair DedupMode = "pair"
	DedupNone   DedupMode = "none"
)

// ParseDedupMode converts a config value into a DedupMode
func ParseDedupMode(s string) (DedupMode, error) {
	switch s {
	case "term", "english":
		return DedupByTerm, nil
	case "pair":
		return DedupByPair, nil
	case "none":
		return DedupNone, nil
	default:
		return "", fmt.Errorf("unknown dedup mode %q", s)
	}
}

// Definitions returns the definitions of entries in order
func Definitions(entries []Entry) []string {
	defs := make([]string, 0, len(entries))
	for _, e := range entries {
		defs = append(defs, e.Definition)
	}
	return defs
}

// DistinctDefinitions counts unique definitions
func DistinctDefinitions(entries []Entry) int {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.Definition] = struct{}{}
	}
	return len(seen)
}
