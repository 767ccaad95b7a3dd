// Package puzzle fetches jigsaw puzzles from the puzzle server.
// It is independent from the slot machines.
package puzzle

import (
	"strings"
	"time"
)

// UntitledPuzzle is the title used when the response has no title line.
const UntitledPuzzle = "Untitled"

// Puzzle is a puzzle handed out by the server.
type Puzzle struct {
	ID         string
	Title      string
	Email      string
	Difficulty int
	FetchedAt  time.Time
}

// Request identifies who asks for a puzzle and how hard it should be.
type Request struct {
	Email      string
	Difficulty int
}

// ValidEmail reports whether email ends with one of the allowed domain
// suffixes (each including the leading '@') and has a non-empty local part.
func ValidEmail(email string, domains []string) bool {
	email = strings.TrimSpace(email)
	for _, d := range domains {
		if strings.HasSuffix(email, d) && len(email) > len(d) {
			return true
		}
	}
	return false
}
