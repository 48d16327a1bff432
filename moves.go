package cubesim

// Predefined slice moves for the outer faces and middle slices.
//
// Example:
//
//	p.Enqueue(cubesim.R, cubesim.U, cubesim.RPrime, cubesim.UPrime)
var (
	// Right face moves
	R      = SliceMove{Axis: AxisX, Layer: 1, Rotation: Clockwise90}
	RPrime = SliceMove{Axis: AxisX, Layer: 1, Rotation: Counterclockwise90}
	R2     = SliceMove{Axis: AxisX, Layer: 1, Rotation: Clockwise180}

	// Left face moves
	L      = SliceMove{Axis: AxisX, Layer: -1, Rotation: Counterclockwise90}
	LPrime = SliceMove{Axis: AxisX, Layer: -1, Rotation: Clockwise90}
	L2     = SliceMove{Axis: AxisX, Layer: -1, Rotation: Counterclockwise180}

	// Up face moves
	U      = SliceMove{Axis: AxisY, Layer: 1, Rotation: Clockwise90}
	UPrime = SliceMove{Axis: AxisY, Layer: 1, Rotation: Counterclockwise90}
	U2     = SliceMove{Axis: AxisY, Layer: 1, Rotation: Clockwise180}

	// Down face moves
	D      = SliceMove{Axis: AxisY, Layer: -1, Rotation: Counterclockwise90}
	DPrime = SliceMove{Axis: AxisY, Layer: -1, Rotation: Clockwise90}
	D2     = SliceMove{Axis: AxisY, Layer: -1, Rotation: Counterclockwise180}

	// Front face moves
	F      = SliceMove{Axis: AxisZ, Layer: 1, Rotation: Clockwise90}
	FPrime = SliceMove{Axis: AxisZ, Layer: 1, Rotation: Counterclockwise90}
	F2     = SliceMove{Axis: AxisZ, Layer: 1, Rotation: Clockwise180}

	// Back face moves
	B      = SliceMove{Axis: AxisZ, Layer: -1, Rotation: Counterclockwise90}
	BPrime = SliceMove{Axis: AxisZ, Layer: -1, Rotation: Clockwise90}
	B2     = SliceMove{Axis: AxisZ, Layer: -1, Rotation: Counterclockwise180}

	// Middle slice moves
	M = SliceMove{Axis: AxisX, Layer: 0, Rotation: Counterclockwise90}
	E = SliceMove{Axis: AxisY, Layer: 0, Rotation: Counterclockwise90}
	S = SliceMove{Axis: AxisZ, Layer: 0, Rotation: Clockwise90}
)

// Sexy move: R U R' U'
var SexyMove = []SliceMove{R, U, RPrime, UPrime}

// T-perm algorithm
var TPerm = []SliceMove{R, U, RPrime, UPrime, RPrime, F, R2, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}
