package shared

import "fmt"

// Source records who authored a menu or plan
type Source string

const (
	SourceAI   Source = "ai"
	SourceUser Source = "user"
)

// Valid reports whether s is a known source
func (s Source) Valid() bool {
	return s == SourceAI || s == SourceUser
}

// ParseSource converts a raw string into a Source
func ParseSource(raw string) (Source, error) {
	s := Source(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown source %q", raw)
	}
	return s, nil
}
