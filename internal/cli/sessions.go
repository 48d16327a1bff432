package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 20, "Maximum number of sessions to show")
}

func runSessions(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := storage.NewSessionRepository(db).List(sessionsLimit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Printf("%-36s  %-19s  %-11s  %5s  %-9s  %s\n", "SESSION", "STARTED", "MODE", "MOVES", "DURATION", "DEVICE")
	for _, s := range list {
		duration := "open"
		if s.EndedAt != nil {
			duration = s.EndedAt.Sub(s.StartedAt).Round(100 * time.Millisecond).String()
		}
		device := "-"
		if s.DeviceName != nil && *s.DeviceName != "" {
			device = *s.DeviceName
		}
		fmt.Printf("%-36s  %-19s  %-11s  %5d  %-9s  %s\n",
			s.SessionID, s.StartedAt.Local().Format("2006-01-02 15:04:05"), s.PlayMode, s.MoveCount, duration, device)
	}
	return nil
}
