package service

import (
	"math/rand"
)

// DistractorCount is the number of wrong options per question
const DistractorCount = 3

// PickDistractors returns up to k distinct definitions from pool, none equal
// to correct or to any of exclude. When the pool has k or fewer candidates
// all of them are returned in first-seen order.
func PickDistractors(rng *rand.Rand, pool []string, correct string, k int, exclude ...string) []string {
	skip := make(map[string]struct{}, len(exclude)+1)
	skip[correct] = struct{}{}
	for _, e := range exclude {
		skip[e] = struct{}{}
	}

	candidates := make([]string, 0, len(pool))
	for _, def := range pool {
		if _, ok := skip[def]; ok {
			continue
		}
		skip[def] = struct{}{}
		candidates = append(candidates, def)
	}

	if len(candidates) <= k {
		return candidates
	}

	picked := make([]string, 0, k)
	for _, i := range rng.Perm(len(candidates))[:k] {
		picked = append(picked, candidates[i])
	}
	return picked
}

// shuffleOptions puts correct among distractors at a random position and
// returns the options with the index of the correct one
func shuffleOptions(rng *rand.Rand, distractors []string, correct string) ([]string, int) {
	options := make([]string, 0, len(distractors)+1)
	options = append(options, distractors...)
	options = append(options, correct)

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	for i, o := range options {
		if o == correct {
			return options, i
		}
	}
	return options, len(options) - 1
}
