package pattern

// kmpMatcher implements Knuth-Morris-Pratt. The failure function (longest
// proper prefix that is also a suffix) is computed per call; the text is
// scanned exactly once.
type kmpMatcher struct{}

// failureFunc computes the KMP failure table for pattern. fail[i] is the
// length of the longest proper prefix of pattern[:i+1] that is also a
// suffix of it.
func failureFunc(pattern string) []int {
	m := len(pattern)
	fail := make([]int, m)
	length := 0
	for i := 1; i < m; {
		if pattern[i] == pattern[length] {
			length++
			fail[i] = length
			i++
		} else if length != 0 {
			length = fail[length-1]
		} else {
			fail[i] = 0
			i++
		}
	}
	return fail
}

func (kmpMatcher) CountOccurrences(text, pattern string) int {
	n, m := len(text), len(pattern)
	if m == 0 || n == 0 || m > n {
		return 0
	}

	fail := failureFunc(pattern)
	count := 0
	i, j := 0, 0
	for i < n {
		if pattern[j] == text[i] {
			i++
			j++
		}
		if j == m {
			// Full match. Continuing via the failure function finds
			// overlapping occurrences too.
			count++
			j = fail[j-1]
		} else if i < n && pattern[j] != text[i] {
			if j != 0 {
				j = fail[j-1]
			} else {
				i++
			}
		}
	}
	return count
}
