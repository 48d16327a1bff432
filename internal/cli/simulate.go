package cli

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
)

var (
	simRandom int
	simSeed   uint64
	simDt     float32
	simAll    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [notation]",
	Short: "Run moves headless and print the final piece positions",
	Long: `Queue moves, tick until the puzzle is idle, and print where every piece
ended up.

Examples:
  cubesim simulate "R U R' U'"
  cubesim simulate --random 20 --seed 7
  cubesim simulate "M2 E2 S2" --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().IntVar(&simRandom, "random", 0, "Append N random moves drawn from all six rotation amounts")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 0, "Seed for --random (default: random)")
	simulateCmd.Flags().Float32Var(&simDt, "dt", 0, "Seconds per tick (default: 1/tick_rate_hz)")
	simulateCmd.Flags().BoolVar(&simAll, "all", false, "Print pieces that did not move too")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && simRandom == 0 {
		return fmt.Errorf("give a move sequence or --random N")
	}

	var extra []cubesim.Option
	if simRandom > 0 {
		extra = append(extra, cubesim.WithFullRotationSet(true))
		if cmd.Flags().Changed("seed") {
			extra = append(extra, cubesim.WithRand(rand.New(rand.NewPCG(simSeed, simSeed))))
		}
	}
	p, err := cubesim.New(puzzleOptions(extra...)...)
	if err != nil {
		return err
	}

	var moves []cubesim.SliceMove
	if len(args) == 1 {
		parsed, err := p.EnqueueNotation(args[0])
		if err != nil {
			return err
		}
		moves = append(moves, parsed...)
	}
	if simRandom > 0 {
		random := p.Scrambler().GenerateN(simRandom)
		if err := p.EnqueueFrom(cubesim.SourceProgram, random...); err != nil {
			return err
		}
		moves = append(moves, random...)
	}

	dt, err := tickDelta(simDt)
	if err != nil {
		return err
	}
	ticks, err := p.Settle(dt, settleBudget(moves, p.RotateSpeed(), dt))
	if err != nil {
		return err
	}

	fmt.Printf("Moves: %s\n", cubesim.FormatSliceMoves(moves))
	fmt.Printf("Ticks: %d (dt=%.4fs)\n", ticks, dt)
	if err := p.CheckLattice(); err != nil {
		return err
	}

	moved := 0
	var b strings.Builder
	for _, piece := range p.Pieces() {
		pose, _ := p.Pose(piece.ID)
		same := pose.Position == piece.Initial
		if !same {
			moved++
		}
		if same && !simAll {
			continue
		}
		fmt.Fprintf(&b, "  piece %2d  %s -> %s\n", piece.ID, formatVec(piece.Initial), formatVec(pose.Position))
	}
	fmt.Printf("Pieces moved: %d/%d\n", moved, cubesim.PieceCount)
	fmt.Print(b.String())

	f, err := p.Facelets()
	if err != nil {
		return err
	}
	fmt.Printf("\nSolved: %v\n%s", f.Uniform(), f)
	return nil
}

const (
	// minTickDelta is the smallest --dt accepted.
	minTickDelta = 1e-4
	// maxTicksPerQuarter caps the settle budget for one quarter turn.
	maxTicksPerQuarter = 1 << 20
)

// tickDelta returns the --dt flag value, or one frame at tick_rate_hz when
// the flag is zero.
func tickDelta(flag float32) (float32, error) {
	if flag == 0 {
		return frameDelta(), nil
	}
	if !(flag >= minTickDelta) || math.IsInf(float64(flag), 0) {
		return 0, fmt.Errorf("--dt %g must be at least %g seconds", flag, minTickDelta)
	}
	return flag, nil
}

// settleBudget is a generous tick limit for running moves to completion.
func settleBudget(moves []cubesim.SliceMove, speed, dt float32) int {
	perQuarter := maxTicksPerQuarter
	if q := 0.25 / (float64(speed) * float64(dt)); q < maxTicksPerQuarter-2 {
		perQuarter = int(q) + 2
	}
	quarters := 0
	for _, m := range moves {
		quarters += m.Rotation.Quarters()
	}
	return (quarters+len(moves))*perQuarter + 10
}

func formatVec(v [3]float32) string {
	return fmt.Sprintf("(%+.0f, %+.0f, %+.0f)", v[0], v[1], v[2])
}
