package dataset

import "math/rand"

// Split shuffles the records with the given seed and carves off a holdout
// fraction for evaluation. holdout outside (0,1) defaults to 0.2.
func Split(records []Record, holdout float64, seed int64) (train, test []Record) {
	if holdout <= 0 || holdout >= 1 {
		holdout = 0.2
	}
	shuffled := append([]Record(nil), records...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cut := int(float64(len(shuffled)) * (1 - holdout))
	if cut < 1 {
		cut = 1
	}
	if cut >= len(shuffled) {
		cut = len(shuffled) - 1
	}
	if cut < 1 {
		// single-row dataset: everything trains, nothing held out
		return shuffled, nil
	}
	return shuffled[:cut], shuffled[cut:]
}
