package queens

// KnownSolutions holds the published solution counts used to cross-check small boards
var KnownSolutions = map[int]uint64{
	4: 2,
	5: 10,
	6: 4,
	7: 40,
	8: 92,
}

// Expected returns the known solution count for n, if any
func Expected(n int) (uint64, bool) {
	count, ok := KnownSolutions[n]
	return count, ok
}
