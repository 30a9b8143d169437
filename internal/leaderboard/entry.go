// Package leaderboard implements the global weekly high-score board: the
// entry model, storage backends, the REST service and its HTTP client.
package leaderboard

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxNameLen caps player names, in runes.
	MaxNameLen = 20
	// DefaultLimit is the number of entries a board shows.
	DefaultLimit = 10
	// AnonymousName replaces empty names.
	AnonymousName = "Anonymous"
)

var (
	ErrInvalidName  = errors.New("leaderboard: invalid name")
	ErrInvalidScore = errors.New("leaderboard: score must be positive")
)

// Entry is one submitted score. Timestamp is milliseconds since the epoch.
type Entry struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Timestamp int64  `json:"timestamp"`
}

// Time returns the submission time in UTC.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp).UTC()
}

// NormalizeName trims the name, substitutes AnonymousName for an empty one
// and cuts it to MaxNameLen runes.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if !utf8.ValidString(name) {
		return "", ErrInvalidName
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return "", ErrInvalidName
		}
	}
	if name == "" {
		return AnonymousName, nil
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLen]))
	}
	return name, nil
}

// NewEntry validates a submission and stamps it with at.
func NewEntry(name string, score int, at time.Time) (Entry, error) {
	if score <= 0 {
		return Entry{}, ErrInvalidScore
	}
	n, err := NormalizeName(name)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: n, Score: score, Timestamp: at.UnixMilli()}, nil
}

// less reports whether a ranks above b. Ties go to the earlier entry.
func less(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Timestamp < b.Timestamp
}
