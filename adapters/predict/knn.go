package predict

import (
	"errors"
	"sort"

	"gomice/domain/table"
)

// KNNClassifier predicts a categorical column by majority vote among the k
// nearest training rows (squared Euclidean distance over the encoded
// feature space). All tie-breaking is deterministic: distance ties keep the
// earlier training row, vote ties pick the lexicographically smallest label.
type KNNClassifier struct {
	k        int
	features [][]float64
	labels   []string
	fitted   bool
}

const defaultNeighbors = 5

// NewKNNClassifier creates a classifier with the default neighbor count
func NewKNNClassifier() *KNNClassifier {
	return &KNNClassifier{k: defaultNeighbors}
}

// Fit stores the training rows; KNN is lazy, there is nothing to solve
func (m *KNNClassifier) Fit(features [][]float64, target []table.Value) error {
	if len(features) == 0 || len(features) != len(target) {
		return errors.New("training set is empty or misaligned")
	}

	m.features = features
	m.labels = make([]string, len(target))
	for i, v := range target {
		m.labels[i] = v.AsLabel()
	}
	m.fitted = true
	return nil
}

// Predict returns one label cell per feature row, each drawn from the
// observed label set of the training rows
func (m *KNNClassifier) Predict(features [][]float64) []table.Value {
	out := make([]table.Value, len(features))
	for i, row := range features {
		if !m.fitted {
			out[i] = table.NewMissingValue()
			continue
		}
		out[i] = table.NewLabelValue(m.predictSingle(row))
	}
	return out
}

// predictSingle votes among the k nearest training rows for one query row
func (m *KNNClassifier) predictSingle(query []float64) string {
	type neighbor struct {
		dist  float64
		label string
	}

	k := m.k
	if k > len(m.features) {
		k = len(m.features)
	}

	nbrs := make([]neighbor, 0, k)
	for j, row := range m.features {
		d := euclidSquared(query, row)
		cand := neighbor{dist: d, label: m.labels[j]}

		if len(nbrs) < k {
			nbrs = append(nbrs, cand)
			sort.SliceStable(nbrs, func(a, b int) bool { return nbrs[a].dist < nbrs[b].dist })
		} else if d < nbrs[len(nbrs)-1].dist {
			// Strict comparison keeps the earlier row on distance ties.
			nbrs[len(nbrs)-1] = cand
			sort.SliceStable(nbrs, func(a, b int) bool { return nbrs[a].dist < nbrs[b].dist })
		}
	}

	votes := make(map[string]int, len(nbrs))
	for _, n := range nbrs {
		votes[n.label]++
	}

	best := ""
	bestCount := -1
	labels := make([]string, 0, len(votes))
	for label := range votes {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		if votes[label] > bestCount {
			best = label
			bestCount = votes[label]
		}
	}
	return best
}

// euclidSquared computes the squared Euclidean distance between two vectors.
// Squared distance avoids the square root since only ordering matters.
func euclidSquared(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
