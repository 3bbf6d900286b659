package generator

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// columnCounts returns how many cells each column of the left half holds, followed by the
// count of the middle column, and the final grid height.
func columnCounts(numCells, densityInc, width, halfWidth, estHeight int, rng *rand.Rand) ([]int, int, error) {
	height := estHeight
	// An odd number of cells needs a center tile
	if numCells%2 == 1 && height%2 == 0 {
		height++
	}

	mid := height / max(1, densityInc/2)
	// The middle column is odd exactly when the number of cells is
	if numCells%2 == 1 && mid%2 != 1 {
		mid++
	} else if numCells%2 == 0 && mid%2 == 1 {
		mid--
	}

	avgCount := (numCells - mid) / (width - 1)
	maxCount := min(avgCount*5/2, height)
	minCount := max(1, avgCount/2)
	if maxCount <= minCount {
		return nil, 0, fmt.Errorf("%d cells on %dx%d grid: %w", numCells, width, height, ErrInfeasibleLayout)
	}

	counts := make([]int, halfWidth, halfWidth+1)
	sum := 0
	for i := range counts {
		counts[i] = minCount + rng.Intn(maxCount-minCount)
		sum += counts[i]
	}

	missing := (numCells-mid)/2 - sum
	if missing != 0 {
		for _, i := range rng.Perm(len(counts)) {
			if missing == 0 {
				break
			}
			var dif int
			if missing > 0 {
				dif = min(maxCount-counts[i], missing)
			} else {
				dif = max(minCount-counts[i], missing)
			}
			counts[i] += dif
			missing -= dif
		}
	}
	if missing != 0 {
		return nil, 0, fmt.Errorf("%d cells on %dx%d grid, %d left over: %w", numCells, width, height, missing, ErrInfeasibleLayout)
	}

	return append(counts, mid), height, nil
}
