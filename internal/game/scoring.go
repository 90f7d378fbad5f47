package game

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	guessBase = 100
	// DrawerBonus is credited to the drawer for each player that guesses
	// correctly.
	DrawerBonus = 20
	// Prompts at least this long tolerate a single-character typo.
	fuzzyMinLen = 6
)

// Normalize lowercases and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether a guess counts as correct for the given prompt:
// exact match after normalization, or edit distance 1 for longer prompts.
func Matches(guess, prompt string) bool {
	g, p := Normalize(guess), Normalize(prompt)
	if g == "" || p == "" {
		return false
	}
	if g == p {
		return true
	}
	if len(p) >= fuzzyMinLen {
		return levenshtein.ComputeDistance(g, p) <= 1
	}
	return false
}

// GuesserAward computes the points for a correct guess. More time left means
// a higher score; the formula is monotonic and never negative.
func GuesserAward(secondsRemaining int) int {
	if secondsRemaining < 0 {
		secondsRemaining = 0
	}
	return guessBase + secondsRemaining
}
