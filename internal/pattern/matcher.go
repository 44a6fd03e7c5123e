// Package pattern implements exact substring counting with interchangeable
// algorithms: Knuth-Morris-Pratt, Boyer-Moore (bad-character heuristic), and
// Aho-Corasick for simultaneous multi-pattern matching.
package pattern

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm identifies an exact-match engine.
type Algorithm string

const (
	// KMP is the Knuth-Morris-Pratt algorithm.
	KMP Algorithm = "kmp"
	// BoyerMoore is Boyer-Moore with the bad-character heuristic only.
	BoyerMoore Algorithm = "bm"
	// AhoCorasick is the multi-pattern Aho-Corasick automaton.
	AhoCorasick Algorithm = "ac"
)

// ErrUnsupportedAlgorithm is returned for unknown algorithm identifiers.
var ErrUnsupportedAlgorithm = errors.New("unsupported pattern matching algorithm")

// Matcher counts exact occurrences of a pattern in a text.
//
// Matching is byte-wise and case-sensitive; callers pass pre-lowercased,
// normalized text. All occurrences are counted, including overlapping ones
// ("aaa" contains "aa" twice); the three algorithms agree on this semantics.
// An empty pattern, empty text, or a pattern longer than the text counts 0.
type Matcher interface {
	CountOccurrences(text, pattern string) int
}

// MultiMatcher additionally counts a batch of patterns in one pass.
type MultiMatcher interface {
	Matcher

	// CountPatterns returns the occurrence count per pattern. Duplicate,
	// empty, or over-length patterns map to 0 rather than erroring.
	CountPatterns(text string, patterns []string) map[string]int
}

// Parse maps an identifier to an Algorithm, case-insensitively.
// Unknown identifiers return ErrUnsupportedAlgorithm naming the input.
func Parse(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case KMP:
		return KMP, nil
	case BoyerMoore:
		return BoyerMoore, nil
	case AhoCorasick:
		return AhoCorasick, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
}

// New returns the matcher for the given identifier. The returned matchers
// are stateless and safe for concurrent use.
func New(name string) (Matcher, error) {
	alg, err := Parse(name)
	if err != nil {
		return nil, err
	}
	switch alg {
	case KMP:
		return kmpMatcher{}, nil
	case BoyerMoore:
		return boyerMooreMatcher{}, nil
	default:
		return acMatcher{}, nil
	}
}
