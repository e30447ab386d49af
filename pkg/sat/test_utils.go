package sat

import "math/rand/v2"

// GenerateSATInstance builds a random instance where every clause mentions each variable with probability 1/2
func GenerateSATInstance(rng *rand.Rand, variables uint64, clauses int) SAT {
	instance := SAT{
		Variables: variables,
		Clauses:   make([][]int64, 0, clauses),
	}

	randomSign := func() int64 {
		if rng.Float32() < 0.5 {
			return -1
		}
		return 1
	}

	for range clauses {
		clause := make([]int64, 0, variables)
		for variable := range variables {
			if rng.Float32() < 0.5 {
				clause = append(clause, randomSign()*int64(variable+1))
			}
		}
		if len(clause) == 0 {
			clause = append(clause, randomSign()*(1+rng.Int64N(int64(variables))))
		}
		instance.Clauses = append(instance.Clauses, clause)
	}

	return instance
}
