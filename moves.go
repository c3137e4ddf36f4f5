package cubestate

// Predefined quarter turns.
//
// Example:
//
//	s, _ := cubestate.ApplyAll(cubestate.NewState(), cubestate.R, cubestate.U, cubestate.RPrime, cubestate.UPrime)
var (
	// Outer layers
	U      = Move{Axis: Y, Layer: 1, Direction: -1}
	UPrime = U.Inverse()
	D      = Move{Axis: Y, Layer: -1, Direction: 1}
	DPrime = D.Inverse()
	R      = Move{Axis: X, Layer: 1, Direction: -1}
	RPrime = R.Inverse()
	L      = Move{Axis: X, Layer: -1, Direction: 1}
	LPrime = L.Inverse()
	F      = Move{Axis: Z, Layer: 1, Direction: -1}
	FPrime = F.Inverse()
	B      = Move{Axis: Z, Layer: -1, Direction: 1}
	BPrime = B.Inverse()

	// Slices
	M      = Move{Axis: X, Layer: 0, Direction: 1}
	MPrime = M.Inverse()
	E      = Move{Axis: Y, Layer: 0, Direction: 1}
	EPrime = E.Inverse()
	S      = Move{Axis: Z, Layer: 0, Direction: -1}
	SPrime = S.Inverse()

	// Wide
	Rw = Move{Axis: X, Layer: 1, Direction: -1, Wide: true}
	Lw = Move{Axis: X, Layer: -1, Direction: 1, Wide: true}
	Uw = Move{Axis: Y, Layer: 1, Direction: -1, Wide: true}
	Dw = Move{Axis: Y, Layer: -1, Direction: 1, Wide: true}
	Fw = Move{Axis: Z, Layer: 1, Direction: -1, Wide: true}
	Bw = Move{Axis: Z, Layer: -1, Direction: 1, Wide: true}
)

// OuterMoves lists the clockwise outer-layer turns in U R F D L B order.
var OuterMoves = []Move{U, R, F, D, L, B}

// SexyMove is R U R' U', one of the most common algorithms.
var SexyMove = []Move{R, U, RPrime, UPrime}

// TPerm is the T-permutation.
var TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R, R, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}
