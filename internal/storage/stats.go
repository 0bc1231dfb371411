package storage

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ScoreSummary describes the distribution of scores for one variant.
type ScoreSummary struct {
	Count  int
	Mean   float64
	StdDev float64
	Median float64
	Best   int
	// TileCounts maps a max tile to how many runs ended on it.
	TileCounts map[int]int
}

// Summarize computes score statistics over entries.
// StdDev is zero for fewer than two entries.
func Summarize(entries []ScoreEntry) ScoreSummary {
	sum := ScoreSummary{
		Count:      len(entries),
		TileCounts: make(map[int]int),
	}
	if len(entries) == 0 {
		return sum
	}

	scores := make([]float64, len(entries))
	for i, e := range entries {
		scores[i] = float64(e.Score)
		sum.Best = max(sum.Best, e.Score)
		sum.TileCounts[e.MaxTile]++
	}
	sort.Float64s(scores)

	sum.Mean = stat.Mean(scores, nil)
	sum.Median = stat.Quantile(0.5, stat.Empirical, scores, nil)
	if len(scores) > 1 {
		sum.StdDev = stat.StdDev(scores, nil)
	}
	if math.IsNaN(sum.StdDev) {
		sum.StdDev = 0
	}

	return sum
}

// Tiles returns the max tiles present in TileCounts, highest first.
func (s ScoreSummary) Tiles() []int {
	tiles := make([]int, 0, len(s.TileCounts))
	for t := range s.TileCounts {
		tiles = append(tiles, t)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiles)))
	return tiles
}
