package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/analysis"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	statsSessionID string
	statsLast      bool
	statsJSON      bool
	statsPause     time.Duration
	statsTopK      int
	statsMaxN      int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for a recorded session",
	Long: `Summarize a recorded session: turn rate, pauses, where moves came from and
the move sequences repeated most often.

Examples:
  cubesim stats --last
  cubesim stats --id <session_id> --json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsSessionID, "id", "", "Session ID")
	statsCmd.Flags().BoolVar(&statsLast, "last", false, "Use the most recent session")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print JSON")
	statsCmd.Flags().DurationVar(&statsPause, "pause", analysis.DefaultPauseThreshold, "Gap counted as a pause")
	statsCmd.Flags().IntVar(&statsTopK, "top", 3, "Repeated sequences to show per length")
	statsCmd.Flags().IntVar(&statsMaxN, "max-n", 6, "Longest sequence length to mine")
}

type statsReport struct {
	Summary *analysis.SessionSummary `json:"summary"`
	Pauses  []analysis.PauseInfo     `json:"pauses,omitempty"`
	Waste   *analysis.RepetitionReport `json:"waste"`
	NGrams  *analysis.NGramReport    `json:"ngrams"`
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsSessionID == "" && !statsLast {
		return fmt.Errorf("specify --id or --last")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions := storage.NewSessionRepository(db)
	var s *storage.Session
	if statsLast {
		s, err = sessions.Latest()
	} else {
		s, err = sessions.Get(statsSessionID)
	}
	if err != nil {
		return err
	}

	moveRepo := storage.NewMoveRepository(db)
	moves, err := moveRepo.List(s.SessionID)
	if err != nil {
		return err
	}
	resets, err := moveRepo.ResetCount(s.SessionID)
	if err != nil {
		return err
	}

	report := statsReport{
		Summary: analysis.Summarize(s, moves, resets, statsPause),
		Pauses:  analysis.AnalyzePauses(moves, statsPause),
		NGrams:  analysis.MineNGrams(analysis.Notations(moves), 2, statsMaxN, statsTopK),
		Waste:   analysis.AnalyzeRepetitions(analysis.ParseNotations(analysis.Notations(moves))),
	}

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printStats(report)
	return nil
}

func printStats(r statsReport) {
	sum := r.Summary
	fmt.Printf("Session:    %s (%s)\n", sum.SessionID, sum.PlayMode)
	fmt.Printf("Duration:   %s\n", (time.Duration(sum.DurationMs) * time.Millisecond).String())
	fmt.Printf("Moves:      %d (%d quarter turns), %d resets\n", sum.TotalMoves, sum.QuarterTurns, sum.Resets)
	fmt.Printf("TPS:        %.2f\n", sum.TPSOverall)
	fmt.Printf("Avg gap:    %.0f ms\n", sum.AvgMoveDurationMs)
	fmt.Printf("Pauses:     %d (longest %d ms)\n", sum.PauseCount, sum.LongestPauseMs)
	fmt.Printf("Optimized:  %d moves (%.0f%%), %d wasted, %d cancellations\n",
		sum.OptimizedMoves, sum.Efficiency*100, r.Waste.TotalWastedMoves, len(r.Waste.ImmediateCancellations))
	fmt.Printf("Sources:    %s\n", formatCounts(sum.BySource))
	fmt.Printf("Axes:       %s\n", formatCounts(sum.ByAxis))

	lengths := make([]int, 0, len(r.NGrams.TopNGrams))
	for n := range r.NGrams.TopNGrams {
		lengths = append(lengths, n)
	}
	if len(lengths) == 0 {
		return
	}
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
	fmt.Println("\nRepeated sequences:")
	for _, n := range lengths {
		for _, g := range r.NGrams.TopNGrams[n] {
			fmt.Printf("  %-24s x%d\n", g.String(), g.Count)
		}
	}
}

// formatCounts renders a count map as "a=1 b=2" in key order.
func formatCounts(m map[string]int) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, " ")
}
