// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ForestConfig tunes a bagged regression forest.
type ForestConfig struct {
	Trees    int
	MaxDepth int
	// MinLeaf is the minimum bootstrap weight on each side of a split.
	MinLeaf float64
	Seed    int64
	// Workers caps concurrent tree builds; zero means GOMAXPROCS.
	Workers int
}

// DefaultForestConfig returns 100 trees of depth at most 16, seeded with 42.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{Trees: 100, MaxDepth: 16, MinLeaf: 1, Seed: 42}
}

// Forest is an ensemble of CART regression trees grown on bootstrap samples.
// A fitted Forest is read-only and safe for concurrent Predict calls.
type Forest struct {
	trees    []*treeNode
	features int
}

type treeNode struct {
	feature     int
	threshold   float64
	left, right *treeNode
	value       float64
}

func (n *treeNode) leaf() bool {
	return n.left == nil
}

// group is a distinct feature row with the targets of every sample that
// produced it.
type group struct {
	x  []float64
	ys []float64
}

// weighted is a group's contribution to one tree.
type weighted struct {
	x    []float64
	w    float64
	sumY float64
}

// FitForest grows cfg.Trees trees over (x, y). Samples with identical
// feature rows are grouped so each tree only sees distinct rows with
// bootstrap weights. Per-tree seeds are drawn sequentially from cfg.Seed, so
// the result does not depend on scheduling.
func FitForest(ctx context.Context, x [][]float64, y []float64, cfg ForestConfig) (*Forest, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("fit forest: %d rows, %d targets", len(x), len(y))
	}
	if cfg.Trees <= 0 || cfg.MaxDepth <= 0 {
		return nil, errors.New("fit forest: trees and max depth must be positive")
	}
	if cfg.MinLeaf <= 0 {
		cfg.MinLeaf = 1
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	groups, sampleGroup := groupRows(x, y)

	master := rand.New(rand.NewSource(cfg.Seed))
	seeds := make([]int64, cfg.Trees)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	f := &Forest{trees: make([]*treeNode, cfg.Trees), features: len(x[0])}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range seeds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows := bootstrap(groups, sampleGroup, y, rand.New(rand.NewSource(seeds[i])))
			f.trees[i] = grow(rows, 0, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fit forest: %w", err)
	}
	return f, nil
}

// Predict averages the trees' predictions for x.
func (f *Forest) Predict(x []float64) float64 {
	var sum float64
	for _, t := range f.trees {
		n := t
		for !n.leaf() {
			v := 0.0
			if n.feature < len(x) {
				v = x[n.feature]
			}
			if v <= n.threshold {
				n = n.left
			} else {
				n = n.right
			}
		}
		sum += n.value
	}
	return sum / float64(len(f.trees))
}

// Size returns the number of trees.
func (f *Forest) Size() int {
	return len(f.trees)
}

func groupRows(x [][]float64, y []float64) ([]group, []int) {
	index := make(map[string]int)
	var groups []group
	sampleGroup := make([]int, len(x))
	for i, row := range x {
		key := rowKey(row)
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, group{x: row})
		}
		groups[gi].ys = append(groups[gi].ys, y[i])
		sampleGroup[i] = gi
	}
	return groups, sampleGroup
}

func rowKey(row []float64) string {
	var b strings.Builder
	for _, v := range row {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte(',')
	}
	return b.String()
}

// bootstrap draws len(y) samples with replacement and folds them into
// weighted distinct rows.
func bootstrap(groups []group, sampleGroup []int, y []float64, rng *rand.Rand) []weighted {
	acc := make([]weighted, len(groups))
	for i := range groups {
		acc[i].x = groups[i].x
	}
	for range y {
		s := rng.Intn(len(y))
		g := sampleGroup[s]
		acc[g].w++
		acc[g].sumY += y[s]
	}

	rows := acc[:0]
	for _, r := range acc {
		if r.w > 0 {
			rows = append(rows, r)
		}
	}
	return rows
}

func grow(rows []weighted, depth int, cfg ForestConfig) *treeNode {
	var w, sum float64
	for _, r := range rows {
		w += r.w
		sum += r.sumY
	}
	node := &treeNode{value: sum / w}
	if depth >= cfg.MaxDepth || len(rows) < 2 || w < 2*cfg.MinLeaf {
		return node
	}

	feature, threshold, ok := bestSplit(rows, w, sum, cfg.MinLeaf)
	if !ok {
		return node
	}

	var left, right []weighted
	for _, r := range rows {
		if r.x[feature] <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	node.feature = feature
	node.threshold = threshold
	node.left = grow(left, depth+1, cfg)
	node.right = grow(right, depth+1, cfg)
	return node
}

// bestSplit finds the split minimising the children's squared error, which
// is the split maximising sum(sumY^2 / w) over the two children.
func bestSplit(rows []weighted, totalW, totalSum, minLeaf float64) (int, float64, bool) {
	bestScore := totalSum * totalSum / totalW
	bestFeature, bestThreshold := -1, 0.0
	// Relative tolerance keeps rounding noise from splitting pure nodes.
	const eps = 1e-9

	order := make([]int, len(rows))
	for f := 0; f < len(rows[0].x); f++ {
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return rows[order[a]].x[f] < rows[order[b]].x[f]
		})
		if rows[order[0]].x[f] == rows[order[len(order)-1]].x[f] {
			continue
		}

		var lw, lsum float64
		for k := 0; k < len(order)-1; k++ {
			r := rows[order[k]]
			lw += r.w
			lsum += r.sumY
			cur, next := r.x[f], rows[order[k+1]].x[f]
			if cur == next {
				continue
			}
			rw, rsum := totalW-lw, totalSum-lsum
			if lw < minLeaf || rw < minLeaf {
				continue
			}
			score := lsum*lsum/lw + rsum*rsum/rw
			if score > bestScore+eps*math.Abs(bestScore) {
				bestScore = score
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}
