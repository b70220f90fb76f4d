// Package moderation censors forbidden words in message content before it
// is persisted or fanned out.
package moderation

import (
	_ "embed"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

//go:embed censored.txt
var defaultWordList string

// Moderator matches forbidden patterns with an Aho-Corasick automaton over a
// normalized view of the text (lowercased, leet-speak folded, separators
// stripped) and stars out the matched spans in the original.
type Moderator struct {
	machine     *goahocorasick.Machine
	replacement rune
}

func NewModerator(words []string, replacement rune) (*Moderator, error) {
	patterns := make([][]rune, 0, len(words))
	for _, word := range words {
		normalized, _ := normalize([]rune(word))
		if len(normalized) == 0 {
			continue
		}
		patterns = append(patterns, normalized)
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{machine: machine, replacement: replacement}, nil
}

// NewDefaultModerator builds a moderator from the embedded word list.
func NewDefaultModerator(replacement rune) (*Moderator, error) {
	var words []string
	for _, line := range strings.Split(defaultWordList, "\n") {
		if word := strings.TrimSpace(line); word != "" {
			words = append(words, word)
		}
	}
	return NewModerator(words, replacement)
}

// Censor returns the input with every forbidden span replaced. Spacing and
// unmatched characters are preserved as-is.
func (m *Moderator) Censor(original string) string {
	origRunes := []rune(original)
	normalized, indexes := normalize(origRunes)
	if len(normalized) == 0 {
		return original
	}

	spans := m.machine.MultiPatternSearch(normalized, false)
	if len(spans) == 0 {
		return original
	}

	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(indexes) {
			continue
		}
		// Map the normalized span back onto the original runes.
		for i := indexes[start]; i <= indexes[end-1]; i++ {
			origRunes[i] = m.replacement
		}
	}
	return string(origRunes)
}

// normalize lowercases, folds common leet substitutions, drops separator
// runes, and records each kept rune's position in the original.
func normalize(input []rune) ([]rune, []int) {
	normalized := make([]rune, 0, len(input))
	indexes := make([]int, 0, len(input))
	for i, r := range input {
		folded := foldLeet(r)
		if unicode.IsPunct(folded) || unicode.IsSpace(folded) || unicode.IsSymbol(folded) {
			continue
		}
		normalized = append(normalized, unicode.ToLower(folded))
		indexes = append(indexes, i)
	}
	return normalized, indexes
}

func foldLeet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	case '7':
		return 't'
	default:
		return r
	}
}
