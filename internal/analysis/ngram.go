package analysis

import (
	"slices"
	"sort"
	"strings"
)

// NGram is a move sequence that repeats within a session.
type NGram struct {
	N        int      `json:"n"`
	Sequence []string `json:"sequence"`
	Count    int      `json:"count"`
	// First few start indexes into the move list.
	Starts []int `json:"starts,omitempty"`
}

// String joins the sequence in notation.
func (g NGram) String() string {
	return strings.Join(g.Sequence, " ")
}

// NGramReport holds the most frequent n-grams for each length.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"`
}

const maxStarts = 10

// RollingHash is a Rabin-Karp hash over a fixed-size window of tokens.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1)
	window []uint16
	n      int
}

// NewRollingHash creates a rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{base: 131, n: n, window: make([]uint16, 0, n), pow: 1}
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}
	return rh
}

// Roll pushes a token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(token uint16) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}
	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)
	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint16 {
	return slices.Clone(rh.window)
}

// Ready reports whether the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

type ngramEntry struct {
	tokens []uint16
	count  int
	starts []int
}

// MineNGrams finds the topK most frequent repeated n-grams for each n in
// [minN, maxN]. Ties keep first-seen order.
func MineNGrams(notations []string, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{TopNGrams: make(map[int][]NGram)}
	if minN < 1 || len(notations) < minN {
		return report
	}

	vocab := make(map[string]uint16)
	names := []string{}
	tokens := make([]uint16, len(notations))
	for i, s := range notations {
		tok, ok := vocab[s]
		if !ok {
			tok = uint16(len(names))
			vocab[s] = tok
			names = append(names, s)
		}
		tokens[i] = tok
	}

	for n := minN; n <= maxN && n <= len(tokens); n++ {
		if grams := mineN(tokens, names, n, topK); len(grams) > 0 {
			report.TopNGrams[n] = grams
		}
	}
	return report
}

func mineN(tokens []uint16, names []string, n, topK int) []NGram {
	buckets := make(map[uint64][]*ngramEntry)
	var order []*ngramEntry
	rh := NewRollingHash(n)

	for i, tok := range tokens {
		rh.Roll(tok)
		if !rh.Ready() {
			continue
		}
		start := i - n + 1
		window := rh.Window()

		var hit *ngramEntry
		for _, e := range buckets[rh.Hash()] {
			if slices.Equal(e.tokens, window) {
				hit = e
				break
			}
		}
		if hit == nil {
			hit = &ngramEntry{tokens: window}
			buckets[rh.Hash()] = append(buckets[rh.Hash()], hit)
			order = append(order, hit)
		}
		hit.count++
		if len(hit.starts) < maxStarts {
			hit.starts = append(hit.starts, start)
		}
	}

	var repeated []*ngramEntry
	for _, e := range order {
		if e.count >= 2 {
			repeated = append(repeated, e)
		}
	}
	sort.SliceStable(repeated, func(i, j int) bool {
		return repeated[i].count > repeated[j].count
	})
	if len(repeated) > topK {
		repeated = repeated[:topK]
	}

	out := make([]NGram, len(repeated))
	for i, e := range repeated {
		seq := make([]string, len(e.tokens))
		for j, t := range e.tokens {
			seq[j] = names[t]
		}
		out[i] = NGram{N: n, Sequence: seq, Count: e.count, Starts: e.starts}
	}
	return out
}
