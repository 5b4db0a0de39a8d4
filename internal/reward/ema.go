package reward

import "gonum.org/v1/gonum/floats"

// UpdateScoresEMA folds per-round rewards into the running scores:
// score[uid] = (1-alpha)*score[uid] + alpha*reward. Only queried uids move;
// everyone else keeps their score.
func UpdateScoresEMA(scores []float64, rewards map[int64]float64, alpha float64) []float64 {
	updated := make([]float64, len(scores))
	copy(updated, scores)

	for uid, r := range rewards {
		if uid < 0 || int(uid) >= len(updated) {
			continue
		}
		updated[uid] = (1-alpha)*updated[uid] + alpha*r
	}

	return updated
}

// L1Normalize scales the array so it sums to one. All-zero input is returned
// unchanged.
func L1Normalize(arr []float64) []float64 {
	result := make([]float64, len(arr))
	copy(result, arr)

	sum := floats.Sum(result)
	if sum > 0 {
		floats.Scale(1.0/sum, result)
	}

	return result
}
