package cli

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
)

var (
	traceDt     float32
	traceHeight int
	traceWidth  int
)

var traceCmd = &cobra.Command{
	Use:   "trace <notation>",
	Short: "Plot the remaining turn angle per tick",
	Long: `Run moves headless and plot, for every tick, how many degrees the turning
slice still has to go. Each move shows up as a ramp down to zero.

Example:
  cubesim trace "R U2 M'" --dt 0.01`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().Float32Var(&traceDt, "dt", 0, "Seconds per tick (default: 1/tick_rate_hz)")
	traceCmd.Flags().IntVar(&traceHeight, "height", 12, "Plot height in rows")
	traceCmd.Flags().IntVar(&traceWidth, "width", 80, "Plot width in columns")
}

func runTrace(cmd *cobra.Command, args []string) error {
	p, err := cubesim.New(puzzleOptions()...)
	if err != nil {
		return err
	}
	moves, err := p.EnqueueNotation(args[0])
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		return fmt.Errorf("no moves in %q", args[0])
	}

	dt, err := tickDelta(traceDt)
	if err != nil {
		return err
	}
	series, err := traceRemaining(p, dt, settleBudget(moves, p.RotateSpeed(), dt))
	if err != nil {
		return err
	}

	caption := fmt.Sprintf("remaining degrees per tick: %s (speed %.1f, dt %.4fs, %d ticks)",
		cubesim.FormatSliceMoves(moves), p.RotateSpeed(), dt, len(series))
	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(traceHeight),
		asciigraph.Width(traceWidth),
		asciigraph.Caption(caption)))
	return nil
}

// traceRemaining ticks p until idle and samples the absolute remaining angle
// in degrees after every tick.
func traceRemaining(p *cubesim.Puzzle, dt float32, maxTicks int) ([]float64, error) {
	series := []float64{0}
	for n := 0; !p.Idle(); n++ {
		if n >= maxTicks {
			return nil, cubesim.ErrNotSettled
		}
		if _, err := p.Tick(dt); err != nil {
			return nil, err
		}
		series = append(series, float64(math32.Abs(p.Remaining())*180/math32.Pi))
	}
	return series, nil
}
