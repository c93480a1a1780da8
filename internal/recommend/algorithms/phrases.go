// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package algorithms

import "strings"

// PhraseMatcher finds which of a fixed set of phrases occur as substrings
// of a text, in one pass over the text (Aho-Corasick). Matching is
// case-insensitive. It is immutable after NewPhraseMatcher returns and
// safe for concurrent use.
type PhraseMatcher struct {
	root    *acNode
	phrases []string
	index   map[string]int
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // phrase indices ending here, including via failure links
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// NewPhraseMatcher builds the automaton. Duplicate and empty phrases are
// ignored; phrases are lower-cased.
func NewPhraseMatcher(phrases []string) *PhraseMatcher {
	m := &PhraseMatcher{root: newACNode(), index: make(map[string]int)}
	for _, p := range phrases {
		p = strings.ToLower(p)
		if p == "" {
			continue
		}
		if _, dup := m.index[p]; dup {
			continue
		}
		m.index[p] = len(m.phrases)
		m.phrases = append(m.phrases, p)
		m.insert(len(m.phrases)-1, p)
	}
	m.buildFailureLinks()
	return m
}

func (m *PhraseMatcher) insert(idx int, phrase string) {
	node := m.root
	for _, ch := range phrase {
		next := node.children[ch]
		if next == nil {
			next = newACNode()
			node.children[ch] = next
		}
		node = next
	}
	node.output = append(node.output, idx)
}

// buildFailureLinks runs a BFS from the root setting each node's failure
// link to its longest proper suffix present in the trie.
func (m *PhraseMatcher) buildFailureLinks() {
	queue := make([]*acNode, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for ch, child := range current.children {
			queue = append(queue, child)
			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = m.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
}

// Len returns the number of distinct phrases.
func (m *PhraseMatcher) Len() int {
	return len(m.phrases)
}

// Index returns the position of phrase in the matcher.
func (m *PhraseMatcher) Index(phrase string) (int, bool) {
	i, ok := m.index[strings.ToLower(phrase)]
	return i, ok
}

// Mark sets found[i] for every phrase i occurring in text. found must
// have length Len().
func (m *PhraseMatcher) Mark(text string, found []bool) {
	if len(m.phrases) == 0 || text == "" {
		return
	}
	node := m.root
	for _, ch := range strings.ToLower(text) {
		for node != m.root && node.children[ch] == nil {
			node = node.failure
		}
		if next := node.children[ch]; next != nil {
			node = next
		}
		for _, idx := range node.output {
			found[idx] = true
		}
	}
}

// Present returns, per phrase, whether it occurs in any of texts.
func (m *PhraseMatcher) Present(texts ...string) []bool {
	found := make([]bool, len(m.phrases))
	for _, t := range texts {
		m.Mark(t, found)
	}
	return found
}
