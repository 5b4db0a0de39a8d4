package reward

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tranmanhhung/sn111/internal/synapse"
)

const ratingBuckets = 5

// RatingHistogram builds an L1-normalized 5-bucket rating histogram for a
// response's valid rating values. Ratings are bucketed by floor: 4.5 lands
// in the 4-star bucket, 5.0 in the 5-star bucket.
func RatingHistogram(reviews []synapse.Review) []float64 {
	hist := make([]float64, ratingBuckets)
	for _, review := range reviews {
		if review.Rating < 1 || review.Rating > 5 {
			continue
		}
		bucket := int(math.Floor(review.Rating)) - 1
		if bucket >= ratingBuckets {
			bucket = ratingBuckets - 1
		}
		hist[bucket]++
	}

	sum := floats.Sum(hist)
	if sum > 0 {
		floats.Scale(1/sum, hist)
	}
	return hist
}

// ConsensusScores compares each responder's rating histogram with the mean
// histogram of all responders and returns the cosine similarity per row.
// All-zero rows are non-responders: they neither receive a score nor pull on
// the mean, and fewer than two actual responders carries no consensus signal.
func ConsensusScores(histograms *mat.Dense) []float64 {
	rows, cols := histograms.Dims()
	scores := make([]float64, rows)

	responders := 0
	mean := make([]float64, cols)
	for rowIdx := 0; rowIdx < rows; rowIdx++ {
		row := mat.Row(nil, rowIdx, histograms)
		if floats.Sum(row) == 0 {
			continue
		}
		responders++
		floats.Add(mean, row)
	}
	if responders < 2 {
		return scores
	}
	floats.Scale(1/float64(responders), mean)

	for rowIdx := 0; rowIdx < rows; rowIdx++ {
		row := mat.Row(nil, rowIdx, histograms)
		sim := cosineSimilarity(row, mean)
		if math.IsNaN(sim) {
			sim = 0
		}
		scores[rowIdx] = sim
	}

	return scores
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	dot := floats.Dot(a, b)
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (normA * normB)
}

// CombineScores blends base rewards with consensus similarities.
func CombineScores(base, consensus []float64) []float64 {
	combined := make([]float64, len(base))
	for i := range base {
		c := 0.0
		if i < len(consensus) {
			c = consensus[i]
		}
		combined[i] = (1-ConsensusWeight)*base[i] + ConsensusWeight*c
	}
	return combined
}
