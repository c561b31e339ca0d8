package recommend

// Similarity computes a Jaccard-like score between two users' book-score
// maps. Intersection sums min(scoreA, scoreB) over common books, union
// sums max over all books either touched. The base ratio gets a boost for
// the raw number of common books, then is capped at 1.0.
//
// Symmetric by construction; exactly 0 when there are no common books.
func Similarity(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var intersection, union float64
	common := 0

	for bookID, scoreA := range a {
		if scoreB, ok := b[bookID]; ok {
			intersection += min(scoreA, scoreB)
			union += max(scoreA, scoreB)
			common++
		} else {
			union += scoreA
		}
	}
	for bookID, scoreB := range b {
		if _, ok := a[bookID]; !ok {
			union += scoreB
		}
	}

	if union == 0 || intersection == 0 {
		return 0
	}

	base := intersection / union
	boost := min(float64(common)/5.0, 1.0)
	return min(base*(1+boost), 1.0)
}
