package cubesim

import "math/rand/v2"

// DefaultScrambleLength is the number of moves in a scramble.
const DefaultScrambleLength = 5

// scrambleRotations are the amounts a scramble draws from.
var scrambleRotations = []RotationAmount{Clockwise90, Clockwise180, Counterclockwise90}

// Scrambler generates random slice moves.
type Scrambler struct {
	length    int
	rng       *rand.Rand
	rotations []RotationAmount
}

// NewScrambler returns a scrambler producing length moves per call to
// Generate. A nil rng uses a randomly seeded source. With full set, every
// rotation amount may be drawn instead of the quarter and half turns.
func NewScrambler(length int, rng *rand.Rand, fullSet bool) *Scrambler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	rotations := scrambleRotations
	if fullSet {
		rotations = RotationAmounts
	}
	return &Scrambler{length: length, rng: rng, rotations: rotations}
}

// Length returns the number of moves Generate produces.
func (s *Scrambler) Length() int {
	return s.length
}

// Generate returns a fresh scramble.
func (s *Scrambler) Generate() []SliceMove {
	return s.GenerateN(s.length)
}

// GenerateN returns n random moves with independently drawn axis, layer and
// rotation.
func (s *Scrambler) GenerateN(n int) []SliceMove {
	if n <= 0 {
		return nil
	}
	moves := make([]SliceMove, n)
	for i := range moves {
		moves[i] = SliceMove{
			Axis:     Axes[s.rng.IntN(len(Axes))],
			Layer:    float32(s.rng.IntN(3) - 1),
			Rotation: s.rotations[s.rng.IntN(len(s.rotations))],
		}
	}
	return moves
}
