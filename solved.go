package cubestate

// IsSolved reports whether every cubelet, the hidden core included, is in
// its home cell with its original orientation. A cubelet that is home but
// twisted makes the state unsolved.
func IsSolved(s State) bool {
	for _, c := range s.cubelets {
		if !c.Home() {
			return false
		}
	}
	return true
}

// IsSolved is the method form of IsSolved.
func (s State) IsSolved() bool {
	return IsSolved(s)
}
