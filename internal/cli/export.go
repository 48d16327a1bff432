package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/journal"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	exportSessionID string
	exportLast      bool
	exportOutput    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a session as zstd-compressed JSON Lines",
	Long: `Export a recorded session. The first line describes the session, then one
line per move or orientation change in time order.

Examples:
  cubesim export --last
  cubesim export --id <session_id> -o session.jsonl.zst`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportSessionID, "id", "", "Session ID to export")
	exportCmd.Flags().BoolVar(&exportLast, "last", false, "Export the most recent session")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: <session_id>.jsonl.zst)")
}

// exportLine is one line of an exported session.
type exportLine struct {
	Kind        string                     `json:"kind"` // session, move, reset, orientation
	Session     *exportSession             `json:"session,omitempty"`
	Move        *storage.MoveRecord        `json:"move,omitempty"`
	Reset       *storage.ResetRecord       `json:"reset,omitempty"`
	Orientation *storage.OrientationRecord `json:"orientation,omitempty"`
}

type exportSession struct {
	ID        string     `json:"id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	PlayMode  string     `json:"play_mode"`
	Device    string     `json:"device,omitempty"`
	Moves     int        `json:"moves"`
	Resets    int        `json:"resets"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportSessionID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions := storage.NewSessionRepository(db)
	var s *storage.Session
	if exportLast {
		s, err = sessions.Latest()
	} else {
		s, err = sessions.Get(exportSessionID)
	}
	if err != nil {
		return err
	}

	moveRepo := storage.NewMoveRepository(db)
	moves, err := moveRepo.List(s.SessionID)
	if err != nil {
		return err
	}
	resets, err := moveRepo.ListResets(s.SessionID)
	if err != nil {
		return err
	}
	orientations, err := storage.NewOrientationRepository(db).List(s.SessionID)
	if err != nil {
		return err
	}

	path := exportOutput
	if path == "" {
		path = s.SessionID + ".jsonl.zst"
	}
	if !strings.HasSuffix(path, ".zst") {
		logger.Warn("output is zstd compressed", "path", path)
	}

	w, err := journal.Create(path)
	if err != nil {
		return err
	}

	header := &exportSession{
		ID:        s.SessionID,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
		PlayMode:  s.PlayMode,
		Moves:     len(moves),
		Resets:    len(resets),
	}
	if s.DeviceName != nil {
		header.Device = *s.DeviceName
	}
	if err := w.Write(exportLine{Kind: "session", Session: header}); err != nil {
		w.Close()
		return err
	}
	for _, l := range mergeByTime(moves, resets, orientations) {
		if err := w.Write(l); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	fmt.Printf("Exported %d lines from session %s to %s\n", w.Count(), s.SessionID, path)
	return nil
}

// mergeByTime interleaves moves and orientation changes by timestamp. Each
// reset follows the move it was recorded after. All inputs are already sorted.
func mergeByTime(moves []storage.MoveRecord, resets []storage.ResetRecord, orientations []storage.OrientationRecord) []exportLine {
	out := make([]exportLine, 0, len(moves)+len(resets)+len(orientations))
	k := 0
	flushResets := func(seq int) {
		for ; k < len(resets) && resets[k].AfterSeq <= seq; k++ {
			out = append(out, exportLine{Kind: "reset", Reset: &resets[k]})
		}
	}

	flushResets(0)
	i, j := 0, 0
	for i < len(moves) || j < len(orientations) {
		if j >= len(orientations) || (i < len(moves) && !orientations[j].Time.Before(moves[i].Time)) {
			out = append(out, exportLine{Kind: "move", Move: &moves[i]})
			flushResets(moves[i].Seq)
			i++
			continue
		}
		out = append(out, exportLine{Kind: "orientation", Orientation: &orientations[j]})
		j++
	}
	for ; k < len(resets); k++ {
		out = append(out, exportLine{Kind: "reset", Reset: &resets[k]})
	}
	return out
}
