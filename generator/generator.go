// Package generator builds the centrally symmetric cell graph a game is played on.
//
// Cells are laid out on a grid of odd width. Cell k and cell n-1-k always sit at mirrored
// grid positions, so the board looks the same from both players' side. Neighbors are
// found along rows and columns, with holes breaking some of the links, and a repair
// phase then links disconnected parts of the graph back together.
package generator

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	InitialSize = 10 // Mass of every cell at the start of a game
	MinCells    = 20 // Smallest number of cells the column heuristics can lay out

	MinDensity = 0.2
	MaxDensity = 1.0

	maxAttempts = 10
)

var (
	ErrInvalidDensity         = errors.New("density must be within [0.2, 1]")
	ErrInvalidHoleProbability = errors.New("hole probability must be within [0, 1]")
	ErrTooFewCells            = errors.New("too few cells")
	ErrInfeasibleLayout       = errors.New("cell counts do not fit the grid")
)

// Position of a cell on the grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type ConnectivityKind int

const (
	FullyConnected ConnectivityKind = iota
	PartiallyConnected
)

// Connectivity tells whether every cell can reach every other cell.
type Connectivity struct {
	Kind       ConnectivityKind
	Components int
}

func (c Connectivity) IsFull() bool {
	return c.Kind == FullyConnected
}

func (c Connectivity) String() string {
	if c.IsFull() {
		return "fully connected"
	}
	return fmt.Sprintf("partially connected (%d components)", c.Components)
}

// Board is the initial state of a game.
type Board struct {
	Owners          []int    // Owner per cell: 0 neutral, 1 or 2
	Masses          []int    // Mass per cell
	StartingIndices [3][]int // Cells owned by neutral, player 1 and player 2 at the start
	TotalMasses     [3]int   // Mass per owner
	Neighbors       [][]int  // Adjacency lists, symmetric
	Positions       []Position
	Width           int
	Height          int
	Connectivity    Connectivity
	Attempts        int // Generation attempts used
}

// NumCells returns the number of cells on the board.
func (b *Board) NumCells() int {
	return len(b.Owners)
}

// Mirror returns the index of the cell at the mirrored position of cell i.
func (b *Board) Mirror(i int) int {
	return len(b.Owners) - 1 - i
}

// MirrorPosition returns the position rotated by 180 degrees around the grid center.
func (b *Board) MirrorPosition(p Position) Position {
	return Position{X: b.Width - 1 - p.X, Y: b.Height - 1 - p.Y}
}

// Generate builds a board of numCells cells. Density in [0.2, 1] controls how tightly the
// cells fill the grid, holeProbability in [0, 1] how likely a link across a hole is dropped.
//
// Up to 10 layouts are tried until the repair phase links everything. The last attempt is
// accepted even if some components stay apart; Board.Connectivity reports the outcome.
func Generate(numCells int, density, holeProbability float64, rng *rand.Rand) (*Board, error) {
	if math.IsNaN(density) || density < MinDensity || density > MaxDensity {
		return nil, fmt.Errorf("density %v: %w", density, ErrInvalidDensity)
	}
	if math.IsNaN(holeProbability) || holeProbability < 0 || holeProbability > 1 {
		return nil, fmt.Errorf("hole probability %v: %w", holeProbability, ErrInvalidHoleProbability)
	}
	if numCells < MinCells {
		return nil, fmt.Errorf("%d cells, need at least %d: %w", numCells, MinCells, ErrTooFewCells)
	}

	densityInc, halfWidth, width, estHeight := gridSize(numCells, density)

	var (
		l       *layout
		counts  []int
		attempt int
	)
	for attempt = 1; attempt <= maxAttempts; attempt++ {
		c, height, err := columnCounts(numCells, densityInc, width, halfWidth, estHeight, rng)
		if err != nil {
			return nil, err
		}
		l = newLayout(numCells, width, height)
		if err := populate(l, c, holeProbability, rng); err != nil {
			return nil, err
		}
		counts = c

		// Only the last attempt may give up on a component
		if connectComponents(l, rng, attempt < maxAttempts) {
			break
		}
		log.Debug().Int("attempt", attempt).Int("cells", numCells).Msg("disconnected layout, retrying")
	}
	attempt = min(attempt, maxAttempts)

	board := newBoard(l, counts[0])
	board.Attempts = attempt

	components, _ := findComponents(board.Neighbors)
	board.Connectivity = Connectivity{Kind: FullyConnected, Components: len(components)}
	if len(components) > 1 {
		board.Connectivity.Kind = PartiallyConnected
		log.Warn().Int("cells", numCells).Int("components", len(components)).Msg("accepting disconnected board")
	}
	return board, nil
}

// gridSize derives the grid dimensions from the number of cells and the density.
func gridSize(numCells int, density float64) (densityInc, halfWidth, width, estHeight int) {
	densityInc = int(1 / density)
	x := math.Sqrt(float64(numCells*densityInc) / 40)
	halfWidth = int(math.Ceil(4 * x))
	width = 2*halfWidth + 1
	estHeight = int(math.Ceil(5 * x))
	return densityInc, halfWidth, width, estHeight
}

// newBoard assigns the first and the last startCount cells to the players.
func newBoard(l *layout, startCount int) *Board {
	n := len(l.positions)
	b := &Board{
		Owners:    make([]int, n),
		Masses:    make([]int, n),
		Neighbors: l.neighbors,
		Positions: l.positions,
		Width:     l.width,
		Height:    l.height,
	}
	for i := range b.Owners {
		switch {
		case i < startCount:
			b.Owners[i] = 1
		case i >= n-startCount:
			b.Owners[i] = 2
		}
		b.Masses[i] = InitialSize
		owner := b.Owners[i]
		b.StartingIndices[owner] = append(b.StartingIndices[owner], i)
		b.TotalMasses[owner] += InitialSize
	}
	return b
}
