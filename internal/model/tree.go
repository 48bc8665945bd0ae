package model

import "sort"

// treeNode is a binary regression tree node. Internal nodes route on
// Feature <= Threshold; leaves carry the fitted value.
type treeNode struct {
	Leaf      bool      `json:"leaf"`
	Value     float64   `json:"value"`
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
}

type treeParams struct {
	maxDepth       int // 0 means unlimited
	minSamplesLeaf int
	l2             float64
}

// leafValue shrinks the mean residual toward zero by the L2 penalty:
// sum(residuals) / (count + l2).
func leafValue(y []float64, idx []int, l2 float64) float64 {
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / (float64(len(idx)) + l2)
}

// fitTree grows a regression tree on the rows named by idx, splitting
// greedily on squared-error reduction.
func fitTree(x [][]float64, y []float64, idx []int, p treeParams) *treeNode {
	return growNode(x, y, idx, p, 1)
}

func growNode(x [][]float64, y []float64, idx []int, p treeParams, depth int) *treeNode {
	if len(idx) < 2*p.minSamplesLeaf || (p.maxDepth > 0 && depth > p.maxDepth) {
		return &treeNode{Leaf: true, Value: leafValue(y, idx, p.l2)}
	}

	feature, threshold, ok := bestSplit(x, y, idx, p.minSamplesLeaf)
	if !ok {
		return &treeNode{Leaf: true, Value: leafValue(y, idx, p.l2)}
	}

	var left, right []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      growNode(x, y, left, p, depth+1),
		Right:     growNode(x, y, right, p, depth+1),
	}
}

// bestSplit scans every feature and every boundary between distinct
// sorted values, maximizing the reduction in sum of squared errors.
// Running prefix sums make each feature scan linear after the sort.
func bestSplit(x [][]float64, y []float64, idx []int, minLeaf int) (int, float64, bool) {
	n := len(idx)
	var totalSum, totalSq float64
	for _, i := range idx {
		totalSum += y[i]
		totalSq += y[i] * y[i]
	}
	parentSSE := totalSq - totalSum*totalSum/float64(n)

	bestGain := 0.0
	bestFeature, bestThreshold := -1, 0.0
	order := make([]int, n)

	for f := range x[idx[0]] {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool {
			return x[order[a]][f] < x[order[b]][f]
		})

		var leftSum, leftSq float64
		for k := 0; k < n-1; k++ {
			i := order[k]
			leftSum += y[i]
			leftSq += y[i] * y[i]

			// No split between equal values.
			if x[i][f] == x[order[k+1]][f] {
				continue
			}
			nl, nr := k+1, n-k-1
			if nl < minLeaf || nr < minLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/float64(nl)) +
				(rightSq - rightSum*rightSum/float64(nr))
			gain := parentSSE - sse
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (x[i][f] + x[order[k+1]][f]) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func (t *treeNode) predict(row []float64) float64 {
	node := t
	for !node.Leaf {
		if row[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}
