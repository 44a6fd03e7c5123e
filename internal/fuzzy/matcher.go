package fuzzy

import "strings"

// Match is the best approximately-matching word for a keyword.
type Match struct {
	Word       string  `json:"word"`
	Similarity float64 `json:"similarity"`
}

// FindBestMatch tokenizes text on whitespace and returns the unique word
// most similar to keyword, provided its similarity clears threshold.
// Only the best score matters, so words are considered as a set.
//
// Ties at equal similarity resolve to the lexicographically smaller word,
// so results are deterministic regardless of word order in the text.
func FindBestMatch(keyword, text string, threshold float64) (Match, bool) {
	keyword = strings.ToLower(keyword)

	var best Match
	found := false
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}

		if len(keyword) == 0 && len(word) == 0 {
			continue
		}
		sim := Similarity(keyword, word)
		if !found || sim > best.Similarity || (sim == best.Similarity && word < best.Word) {
			best = Match{Word: word, Similarity: sim}
			found = true
		}
	}

	if !found || best.Similarity < threshold {
		return Match{}, false
	}
	return best, true
}
