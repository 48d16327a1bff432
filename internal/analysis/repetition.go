package analysis

import (
	"github.com/SeamusWaldron/cubesim"
)

// Cancellation is a move immediately undone, such as R followed by R'.
type Cancellation struct {
	Index1 int    `json:"index1"`
	Index2 int    `json:"index2"`
	Move1  string `json:"move1"`
	Move2  string `json:"move2"`
}

// MergeOpportunity is two adjacent turns of one layer that are a single
// turn, such as R R.
type MergeOpportunity struct {
	Index1     int    `json:"index1"`
	Index2     int    `json:"index2"`
	Move1      string `json:"move1"`
	Move2      string `json:"move2"`
	MergedMove string `json:"merged_move"`
}

// BackAndForthPattern is a pair of moves repeated at least three times,
// such as R U R U R U.
type BackAndForthPattern struct {
	StartIndex int      `json:"start_index"`
	EndIndex   int      `json:"end_index"`
	Pattern    []string `json:"pattern"`
	Count      int      `json:"count"`
}

// RepetitionReport collects wasted motion in a move sequence.
type RepetitionReport struct {
	ImmediateCancellations []Cancellation        `json:"immediate_cancellations"`
	MergeOpportunities     []MergeOpportunity    `json:"merge_opportunities"`
	BackAndForthPatterns   []BackAndForthPattern `json:"back_and_forth_patterns"`
	TotalWastedMoves       int                   `json:"total_wasted_moves"`
}

// ParseNotations parses recorded notation strings. Entries that are not
// standard notation are skipped.
func ParseNotations(notations []string) []cubesim.Move {
	out := make([]cubesim.Move, 0, len(notations))
	for _, n := range notations {
		if m, err := cubesim.ParseMove(n); err == nil {
			out = append(out, m)
		}
	}
	return out
}

// AnalyzeRepetitions finds cancellations, mergeable pairs and back-and-forth
// patterns in moves.
func AnalyzeRepetitions(moves []cubesim.Move) *RepetitionReport {
	report := &RepetitionReport{
		ImmediateCancellations: []Cancellation{},
		MergeOpportunities:     []MergeOpportunity{},
		BackAndForthPatterns:   []BackAndForthPattern{},
	}
	if len(moves) < 2 {
		return report
	}

	for i := 0; i < len(moves)-1; i++ {
		m1, m2 := moves[i], moves[i+1]
		if m1.Face != m2.Face {
			continue
		}
		merged, ok := mergeMoves(m1, m2)
		if !ok {
			report.ImmediateCancellations = append(report.ImmediateCancellations, Cancellation{
				Index1: i,
				Index2: i + 1,
				Move1:  m1.Notation(),
				Move2:  m2.Notation(),
			})
			report.TotalWastedMoves += 2
			continue
		}
		report.MergeOpportunities = append(report.MergeOpportunities, MergeOpportunity{
			Index1:     i,
			Index2:     i + 1,
			Move1:      m1.Notation(),
			Move2:      m2.Notation(),
			MergedMove: merged.Notation(),
		})
		report.TotalWastedMoves++
	}

	report.BackAndForthPatterns = findBackAndForth(moves)
	return report
}

func findBackAndForth(moves []cubesim.Move) []BackAndForthPattern {
	patterns := []BackAndForthPattern{}
	i := 0
	for i < len(moves)-3 {
		a, b := moves[i], moves[i+1]
		count := 1
		j := i + 2
		for j < len(moves)-1 && sameMove(moves[j], a) && sameMove(moves[j+1], b) {
			count++
			j += 2
		}
		if count >= 3 {
			patterns = append(patterns, BackAndForthPattern{
				StartIndex: i,
				EndIndex:   i + count*2 - 1,
				Pattern:    []string{a.Notation(), b.Notation()},
				Count:      count,
			})
			i = j
			continue
		}
		i++
	}
	return patterns
}

func sameMove(a, b cubesim.Move) bool {
	return a.Face == b.Face && a.Turn == b.Turn
}

// quarterTurns counts a turn in clockwise quarters, 0 to 3.
func quarterTurns(t cubesim.Turn) int {
	switch t {
	case cubesim.CW:
		return 1
	case cubesim.Double:
		return 2
	case cubesim.CCW:
		return 3
	}
	return 0
}

// mergeMoves combines two turns of the same face. ok is false when they
// cancel out.
func mergeMoves(a, b cubesim.Move) (cubesim.Move, bool) {
	out := cubesim.Move{Face: a.Face, Time: a.Time}
	switch (quarterTurns(a.Turn) + quarterTurns(b.Turn)) % 4 {
	case 1:
		out.Turn = cubesim.CW
	case 2:
		out.Turn = cubesim.Double
	case 3:
		out.Turn = cubesim.CCW
	default:
		return cubesim.Move{}, false
	}
	return out, true
}

// OptimizeMoves applies cancellations and merges until no two adjacent
// moves turn the same face.
func OptimizeMoves(moves []cubesim.Move) []cubesim.Move {
	result := make([]cubesim.Move, 0, len(moves))
	for _, move := range moves {
		if len(result) == 0 || result[len(result)-1].Face != move.Face {
			result = append(result, move)
			continue
		}
		last := &result[len(result)-1]
		if merged, ok := mergeMoves(*last, move); ok {
			*last = merged
		} else {
			result = result[:len(result)-1]
		}
	}
	return result
}

// CalculateEfficiency returns len(optimized)/len(original), or 1 for an
// empty sequence.
func CalculateEfficiency(original, optimized []cubesim.Move) float64 {
	if len(original) == 0 {
		return 1.0
	}
	return float64(len(optimized)) / float64(len(original))
}
