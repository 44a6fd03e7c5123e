package pattern

// acMatcher implements Aho-Corasick multi-pattern matching. The automaton
// is built per call from the pattern batch: a trie over all patterns,
// failure links computed breadth-first from the root, and each node's
// output set inheriting its failure link's outputs.
type acMatcher struct{}

type acNode struct {
	children map[byte]*acNode
	fail     *acNode
	// output holds the indices of patterns ending at this node, plus
	// those inherited from the failure chain.
	output []int
}

func newACNode() *acNode {
	return &acNode{children: make(map[byte]*acNode)}
}

// buildAutomaton builds the trie and failure links for the given patterns.
func buildAutomaton(patterns []string) *acNode {
	root := newACNode()
	for idx, p := range patterns {
		cur := root
		for i := 0; i < len(p); i++ {
			c := p[i]
			next := cur.children[c]
			if next == nil {
				next = newACNode()
				cur.children[c] = next
			}
			cur = next
		}
		cur.output = append(cur.output, idx)
	}

	// BFS guarantees failure links of shallower nodes are set before any
	// deeper node needs them.
	queue := make([]*acNode, 0, len(root.children))
	for _, child := range root.children {
		child.fail = root
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for c, child := range cur.children {
			queue = append(queue, child)
			f := cur.fail
			for f != nil && f.children[c] == nil {
				f = f.fail
			}
			if f != nil {
				child.fail = f.children[c]
			} else {
				child.fail = root
			}
			child.output = append(child.output, child.fail.output...)
		}
	}
	return root
}

func (m acMatcher) CountOccurrences(text, pattern string) int {
	if pattern == "" || text == "" || len(pattern) > len(text) {
		return 0
	}
	return m.CountPatterns(text, []string{pattern})[pattern]
}

func (acMatcher) CountPatterns(text string, patterns []string) map[string]int {
	counts := make(map[string]int, len(patterns))
	for _, p := range patterns {
		counts[p] = 0
	}
	if text == "" {
		return counts
	}

	// Deduplicate and drop patterns that can never occur.
	valid := make([]string, 0, len(patterns))
	seen := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		if p == "" || len(p) > len(text) {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		return counts
	}

	root := buildAutomaton(valid)
	tallies := make([]int, len(valid))
	cur := root
	for i := 0; i < len(text); i++ {
		c := text[i]
		for cur != nil && cur.children[c] == nil {
			cur = cur.fail
		}
		if cur == nil {
			cur = root
			continue
		}
		cur = cur.children[c]
		for _, idx := range cur.output {
			tallies[idx]++
		}
	}
	for i, p := range valid {
		counts[p] = tallies[i]
	}
	return counts
}
