// Package analysis computes statistics over recorded sessions.
package analysis

import (
	"sort"
	"time"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// DefaultPauseThreshold is the gap between moves counted as a pause.
const DefaultPauseThreshold = 1500 * time.Millisecond

// SessionSummary contains statistics for one recorded session.
type SessionSummary struct {
	SessionID         string         `json:"session_id"`
	PlayMode          string         `json:"play_mode"`
	StartedAt         time.Time      `json:"started_at"`
	EndedAt           *time.Time     `json:"ended_at,omitempty"`
	DurationMs        int64          `json:"duration_ms"`
	TotalMoves        int            `json:"total_moves"`
	QuarterTurns      int            `json:"quarter_turns"`
	OptimizedMoves    int            `json:"optimized_moves"`
	Efficiency        float64        `json:"efficiency"`
	Resets            int            `json:"resets"`
	TPSOverall        float64        `json:"tps_overall"`
	BySource          map[string]int `json:"by_source"`
	ByAxis            map[string]int `json:"by_axis"`
	LongestPauseMs    int64          `json:"longest_pause_ms"`
	PauseCount        int            `json:"pause_count"`
	AvgMoveDurationMs float64        `json:"avg_move_duration_ms"`
}

// PauseInfo is a gap between two moves.
type PauseInfo struct {
	AfterSeq   int       `json:"after_seq"`
	DurationMs int64     `json:"duration_ms"`
	At         time.Time `json:"at"`
}

// Summarize builds the summary of a session from its moves. Duration runs
// from session start to end, or to the last move while the session is open.
func Summarize(s *storage.Session, moves []storage.MoveRecord, resets int, pauseThreshold time.Duration) *SessionSummary {
	sum := &SessionSummary{
		SessionID:  s.SessionID,
		PlayMode:   s.PlayMode,
		StartedAt:  s.StartedAt,
		EndedAt:    s.EndedAt,
		TotalMoves: len(moves),
		Resets:     resets,
		BySource:   make(map[string]int),
		ByAxis:     make(map[string]int),
	}

	end := s.StartedAt
	if s.EndedAt != nil {
		end = *s.EndedAt
	} else if len(moves) > 0 {
		end = moves[len(moves)-1].Time
	}
	if d := end.Sub(s.StartedAt); d > 0 {
		sum.DurationMs = d.Milliseconds()
	}

	for _, m := range moves {
		sum.BySource[m.Source]++
		sum.ByAxis[m.Axis]++
		sum.QuarterTurns += quarters(m.Rotation)
	}

	parsed := ParseNotations(Notations(moves))
	optimized := OptimizeMoves(parsed)
	sum.OptimizedMoves = len(optimized)
	sum.Efficiency = CalculateEfficiency(parsed, optimized)

	sum.TPSOverall = CalculateTPS(moves, sum.DurationMs)
	sum.AvgMoveDurationMs = CalculateAvgMoveDuration(moves)
	sum.LongestPauseMs = FindLongestPause(moves)
	sum.PauseCount = len(AnalyzePauses(moves, pauseThreshold))
	return sum
}

func quarters(rotation string) int {
	r, err := cubesim.ParseRotation(rotation)
	if err != nil {
		return 0
	}
	return r.Quarters()
}

// AnalyzePauses finds every gap between consecutive moves of at least
// threshold, longest first.
func AnalyzePauses(moves []storage.MoveRecord, threshold time.Duration) []PauseInfo {
	var pauses []PauseInfo
	for i := 1; i < len(moves); i++ {
		gap := moves[i].Time.Sub(moves[i-1].Time)
		if gap >= threshold {
			pauses = append(pauses, PauseInfo{
				AfterSeq:   moves[i-1].Seq,
				DurationMs: gap.Milliseconds(),
				At:         moves[i-1].Time,
			})
		}
	}
	sort.SliceStable(pauses, func(i, j int) bool {
		return pauses[i].DurationMs > pauses[j].DurationMs
	})
	return pauses
}

// CalculateTPS calculates turns per second over durationMs.
func CalculateTPS(moves []storage.MoveRecord, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(len(moves)) / (float64(durationMs) / 1000.0)
}

// CalculateAvgMoveDuration calculates the mean gap between moves.
func CalculateAvgMoveDuration(moves []storage.MoveRecord) float64 {
	if len(moves) < 2 {
		return 0
	}
	total := moves[len(moves)-1].Time.Sub(moves[0].Time)
	return float64(total.Milliseconds()) / float64(len(moves)-1)
}

// FindLongestPause returns the longest gap between moves in milliseconds.
func FindLongestPause(moves []storage.MoveRecord) int64 {
	var longest int64
	for i := 1; i < len(moves); i++ {
		if gap := moves[i].Time.Sub(moves[i-1].Time).Milliseconds(); gap > longest {
			longest = gap
		}
	}
	return longest
}

// Notations returns the notation of each move, in order.
func Notations(moves []storage.MoveRecord) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.Notation
	}
	return out
}
