// Package analysis derives statistics from journaled move sequences.
package analysis

import (
	"sort"

	"github.com/SeamusWaldron/cubestate"
)

// TimedMove is a move with its offset from the session start.
type TimedMove struct {
	Move cubestate.Move
	TsMs int64
}

// NGram represents a repeated move sequence.
type NGram struct {
	N           int               `json:"n"`
	Sequence    []string          `json:"sequence"`
	Tokens      []uint8           `json:"-"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`
}

// NGramOccurrence represents where an n-gram was found.
type NGramOccurrence struct {
	SessionID  string `json:"session_id,omitempty"`
	StartIndex int    `json:"start_index"`
	TsMs       int64  `json:"ts_ms"`
}

// NGramReport contains the results of n-gram mining.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"` // Keyed by n
}

// token packs a move into one byte: 12 slots per axis, 4 per layer.
func token(m cubestate.Move) uint8 {
	t := int(m.Axis)*12 + (m.Layer+1)*4 + (m.Direction + 1)
	if m.Wide {
		t++
	}
	return uint8(t)
}

// RollingHash implements Rabin-Karp rolling hash for efficient n-gram detection.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []uint8
	n      int
}

// NewRollingHash creates a new rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   31,
		n:      n,
		window: make([]uint8, 0, n),
	}

	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}

	return rh
}

// Roll adds a token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(token uint8) {
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
func (rh *RollingHash) Window() []uint8 {
	result := make([]uint8, len(rh.window))
	copy(result, rh.window)
	return result
}

// Ready returns true if the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

type ngramEntry struct {
	tokens      []uint8
	first       int
	count       int
	occurrences []NGramOccurrence
}

// MineNGrams finds the top-K most frequent n-grams for each n in [minN, maxN].
// Only sequences seen at least twice are reported.
func MineNGrams(moves []TimedMove, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{
		TopNGrams: make(map[int][]NGram),
	}

	if minN < 1 || len(moves) < minN {
		return report
	}

	tokens := make([]uint8, len(moves))
	for i, m := range moves {
		tokens[i] = token(m.Move)
	}

	for n := minN; n <= maxN && n <= len(moves); n++ {
		ngrams := mineNGramsForN(tokens, moves, n, topK)
		if len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}

	return report
}

func mineNGramsForN(tokens []uint8, moves []TimedMove, n, topK int) []NGram {
	counts := make(map[uint64][]*ngramEntry)
	var order []*ngramEntry
	rh := NewRollingHash(n)

	for i, tok := range tokens {
		rh.Roll(tok)
		if !rh.Ready() {
			continue
		}

		start := i - n + 1
		occ := NGramOccurrence{StartIndex: start, TsMs: moves[start].TsMs}
		window := rh.Window()

		var entry *ngramEntry
		for _, e := range counts[rh.Hash()] {
			if slicesEqual(e.tokens, window) {
				entry = e
				break
			}
		}
		if entry == nil {
			entry = &ngramEntry{tokens: window, first: start}
			counts[rh.Hash()] = append(counts[rh.Hash()], entry)
			order = append(order, entry)
		}
		entry.count++
		if len(entry.occurrences) < 10 {
			entry.occurrences = append(entry.occurrences, occ)
		}
	}

	entries := make([]*ngramEntry, 0, len(order))
	for _, entry := range order {
		if entry.count >= 2 {
			entries = append(entries, entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})

	if len(entries) > topK {
		entries = entries[:topK]
	}

	result := make([]NGram, len(entries))
	for i, entry := range entries {
		sequence := make([]string, n)
		for j := 0; j < n; j++ {
			sequence[j] = moves[entry.first+j].Move.Notation()
		}

		result[i] = NGram{
			N:           n,
			Sequence:    sequence,
			Tokens:      entry.tokens,
			Count:       entry.count,
			Occurrences: entry.occurrences,
		}
	}

	return result
}

func slicesEqual(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MineNGramsAcrossSessions aggregates per-session reports into one.
func MineNGramsAcrossSessions(reports map[string]*NGramReport, topK int) *NGramReport {
	report := &NGramReport{
		TopNGrams: make(map[int][]NGram),
	}

	ns := make(map[int]bool)
	for _, r := range reports {
		for n := range r.TopNGrams {
			ns[n] = true
		}
	}

	ids := make([]string, 0, len(reports))
	for id := range reports {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for n := range ns {
		aggregated := make(map[string]*NGram)
		var keys []string

		for _, sessionID := range ids {
			for _, ng := range reports[sessionID].TopNGrams[n] {
				key := string(ng.Tokens)
				existing, ok := aggregated[key]
				if !ok {
					existing = &NGram{
						N:        ng.N,
						Sequence: ng.Sequence,
						Tokens:   ng.Tokens,
					}
					aggregated[key] = existing
					keys = append(keys, key)
				}
				existing.Count += ng.Count
				for _, occ := range ng.Occurrences {
					if len(existing.Occurrences) < 10 {
						occ.SessionID = sessionID
						existing.Occurrences = append(existing.Occurrences, occ)
					}
				}
			}
		}

		ngrams := make([]NGram, 0, len(keys))
		for _, k := range keys {
			ngrams = append(ngrams, *aggregated[k])
		}
		sort.SliceStable(ngrams, func(i, j int) bool {
			return ngrams[i].Count > ngrams[j].Count
		})
		if len(ngrams) > topK {
			ngrams = ngrams[:topK]
		}
		if len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}

	return report
}
