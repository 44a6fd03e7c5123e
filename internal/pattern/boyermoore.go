package pattern

// boyerMooreMatcher implements Boyer-Moore with the bad-character heuristic
// only (no good-suffix rule). Average-case sublinear; worst case O(n*m).
type boyerMooreMatcher struct{}

// lastOccurrence builds the bad-character table: the rightmost index of
// each byte in the pattern, or -1 for bytes not present.
func lastOccurrence(pattern string) [256]int {
	var last [256]int
	for i := range last {
		last[i] = -1
	}
	for i := 0; i < len(pattern); i++ {
		last[pattern[i]] = i
	}
	return last
}

func (boyerMooreMatcher) CountOccurrences(text, pattern string) int {
	n, m := len(text), len(pattern)
	if m == 0 || n == 0 || m > n {
		return 0
	}

	last := lastOccurrence(pattern)
	count := 0
	shift := 0
	for shift <= n-m {
		j := m - 1
		for j >= 0 && pattern[j] == text[shift+j] {
			j--
		}
		if j < 0 {
			count++
			// Advance past the match using the byte just after the
			// window, so overlapping occurrences are still found.
			if shift+m < n {
				shift += m - last[text[shift+m]]
			} else {
				shift++
			}
		} else {
			s := j - last[text[shift+j]]
			if s < 1 {
				s = 1
			}
			shift += s
		}
	}
	return count
}
