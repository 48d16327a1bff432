// cubesim - terminal simulator and remote host for a 3x3x3 twisty puzzle.
package main

import (
	"github.com/SeamusWaldron/cubesim/internal/cli"
)

func main() {
	cli.Execute()
}
