package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/protocol"
)

var monitorOrientation bool

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Print the turns of a connected GoCube as slice moves",
	Long: `Connect to the first GoCube found and print each physical turn in
notation and as a slice move. With --orientation the faces pointing up and
toward you are printed whenever they change.`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().BoolVar(&monitorOrientation, "orientation", false, "Also print orientation changes")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	src, err := connectDevice(cmd.Context())
	if err != nil {
		return err
	}
	defer src.Close()

	fmt.Printf("Connected to %s. Turn the cube; Ctrl+C to stop.\n", src.DeviceName())
	if err := src.FlashBacklight(); err != nil {
		logger.Warn("backlight flash failed", "err", err)
	}

	n := 0
	src.OnMove(func(m cubesim.SliceMove) {
		n++
		fmt.Printf("%4d  %-3s %s\n", n, m.Notation(), m)
	})
	src.OnBattery(func(level int) {
		fmt.Printf("battery %d%%\n", level)
	})
	if monitorOrientation {
		var last string
		src.OnOrientation(func(q mgl32.Quat) {
			up, front := protocol.UpFront(q)
			if cur := up + front; cur != last {
				last = cur
				fmt.Printf("      up %s  front %s\n", up, front)
			}
		})
		if err := src.EnableOrientation(); err != nil {
			return err
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	fmt.Printf("\n%d moves\n", n)
	return nil
}
