package redline

import "strings"

// wordDiff compares two bodies word by word via longest common
// subsequence. A section counts as modified only when at least one word
// was added or removed; pure whitespace reflow is not a change.
type wordDiff struct {
	Added   int
	Removed int
}

func (d wordDiff) Changed() bool { return d.Added > 0 || d.Removed > 0 }

// Beyond this many words the DP table stops paying for itself; fall back
// to a coarse comparison.
const maxDiffWords = 2000

func diffWords(oldBody, newBody string) wordDiff {
	oldWords := strings.Fields(oldBody)
	newWords := strings.Fields(newBody)

	if len(oldWords) > maxDiffWords || len(newWords) > maxDiffWords {
		if strings.Join(oldWords, " ") == strings.Join(newWords, " ") {
			return wordDiff{}
		}
		return wordDiff{Added: len(newWords), Removed: len(oldWords)}
	}

	common := lcsLength(oldWords, newWords)
	return wordDiff{
		Added:   len(newWords) - common,
		Removed: len(oldWords) - common,
	}
}

// lcsLength computes LCS length with a two-row table.
func lcsLength(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
