package model

import (
	"errors"
	"math/rand"
	"sort"
)

// treeNode is one node of a regression tree. Trees are stored as a flat
// slice: a node's children are slice indices, the root is index 0.
type treeNode struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t"`
	Left      int     `json:"l"`
	Right     int     `json:"r"`
	Value     float64 `json:"v"`
	Leaf      bool    `json:"leaf,omitempty"`
}

type tree struct {
	Nodes []treeNode `json:"nodes"`
}

// candidateSplits caps the number of thresholds tried per feature.
const candidateSplits = 8

type growConfig struct {
	maxDepth    int
	minLeaf     int
	featuresPer int
	rng         *rand.Rand
	// importance accumulates sum-of-squares reduction per feature index
	// across all splits of all trees fed through this config.
	importance []float64
}

func growTree(x [][]float64, y []float64, cfg *growConfig) tree {
	return tree{Nodes: growNode(x, y, 0, cfg)}
}

func growNode(x [][]float64, y []float64, depth int, cfg *growConfig) []treeNode {
	leaf := func() []treeNode {
		return []treeNode{{Feature: -1, Left: -1, Right: -1, Value: mean(y), Leaf: true}}
	}
	if depth >= cfg.maxDepth || len(y) < 2*cfg.minLeaf || allEqual(y) {
		return leaf()
	}

	feature, threshold, gain, ok := bestSplit(x, y, cfg)
	if !ok {
		return leaf()
	}

	leftX, leftY, rightX, rightY := partition(x, y, feature, threshold)
	if len(leftY) < cfg.minLeaf || len(rightY) < cfg.minLeaf {
		return leaf()
	}
	if cfg.importance != nil {
		cfg.importance[feature] += gain
	}

	left := growNode(leftX, leftY, depth+1, cfg)
	right := growNode(rightX, rightY, depth+1, cfg)
	// Child slices index from their own root; shift to the parent slice.
	shiftNodes(left, 1)
	shiftNodes(right, 1+len(left))

	nodes := make([]treeNode, 0, 1+len(left)+len(right))
	nodes = append(nodes, treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      1,
		Right:     1 + len(left),
		Value:     mean(y),
	})
	nodes = append(nodes, left...)
	nodes = append(nodes, right...)
	return nodes
}

func shiftNodes(nodes []treeNode, delta int) {
	for i := range nodes {
		if nodes[i].Leaf {
			continue
		}
		nodes[i].Left += delta
		nodes[i].Right += delta
	}
}

// bestSplit searches a random feature subset for the split with the largest
// sum-of-squares reduction.
func bestSplit(x [][]float64, y []float64, cfg *growConfig) (feature int, threshold, gain float64, ok bool) {
	parentSSE := sse(y)
	bestFeature := -1
	bestThreshold := 0.0
	bestChildSSE := parentSSE

	for _, f := range featureSubset(len(x[0]), cfg.featuresPer, cfg.rng) {
		values := make([]float64, len(x))
		for i := range x {
			values[i] = x[i][f]
		}
		for _, t := range thresholds(values) {
			leftY, rightY := splitTargets(x, y, f, t)
			if len(leftY) < cfg.minLeaf || len(rightY) < cfg.minLeaf {
				continue
			}
			childSSE := sse(leftY) + sse(rightY)
			if childSSE < bestChildSSE {
				bestChildSSE = childSSE
				bestFeature = f
				bestThreshold = t
			}
		}
	}
	if bestFeature < 0 {
		return -1, 0, 0, false
	}
	return bestFeature, bestThreshold, parentSSE - bestChildSSE, true
}

// thresholds returns up to candidateSplits midpoints between consecutive
// distinct sorted values.
func thresholds(values []float64) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	uniq := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != uniq[len(uniq)-1] {
			uniq = append(uniq, v)
		}
	}
	if len(uniq) < 2 {
		return nil
	}
	step := 1
	if gaps := len(uniq) - 1; gaps > candidateSplits {
		step = gaps / candidateSplits
	}
	var out []float64
	for i := 0; i+1 < len(uniq); i += step {
		out = append(out, (uniq[i]+uniq[i+1])/2)
	}
	return out
}

func featureSubset(total, want int, rng *rand.Rand) []int {
	if want >= total {
		all := make([]int, total)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return rng.Perm(total)[:want]
}

func partition(x [][]float64, y []float64, feature int, threshold float64) (leftX [][]float64, leftY []float64, rightX [][]float64, rightY []float64) {
	for i, row := range x {
		if row[feature] <= threshold {
			leftX = append(leftX, row)
			leftY = append(leftY, y[i])
		} else {
			rightX = append(rightX, row)
			rightY = append(rightY, y[i])
		}
	}
	return leftX, leftY, rightX, rightY
}

func splitTargets(x [][]float64, y []float64, feature int, threshold float64) (left, right []float64) {
	for i, row := range x {
		if row[feature] <= threshold {
			left = append(left, y[i])
		} else {
			right = append(right, y[i])
		}
	}
	return left, right
}

func (t tree) predict(features []float64) (float64, error) {
	if len(t.Nodes) == 0 {
		return 0, errors.New("empty tree")
	}
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.Leaf {
			return node.Value, nil
		}
		if node.Feature < 0 || node.Feature >= len(features) {
			return 0, errors.New("feature index out of range")
		}
		if features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx <= 0 || idx >= len(t.Nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sse(values []float64) float64 {
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum
}

func allEqual(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
