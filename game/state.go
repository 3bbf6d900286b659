package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"cellwars/generator"
	"cellwars/utils"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// Game is the authoritative state of a Cell Wars game. Everything a player may change lives
// in slices indexed by cell; agents only ever get a Clone.
type Game struct {
	Owners          []int    // Owner per cell: 0 neutral, 1 or 2
	Masses          []int    // Mass per cell
	Neighbors       [][]int  // Adjacency lists, symmetric
	TotalMasses     [3]int   // Sum of the masses per owner
	StartingIndices [3][]int // Cells per owner at the start of the game
	Turn            int      // Player to move, 1 or 2
	Counter         int      // Number of moves made
	Winner          int      // Ongoing, Draw, 1 or 2
	MaxRounds       int      // Rounds before a draw, <= 0 for no limit
	NumCells        int

	// Read only after NewGame, shared between clones
	positions    []generator.Position
	width        int
	height       int
	connectivity generator.Connectivity

	src *rand.PCGSource
	rng *rand.Rand
}

// New returns a game without a board. Call NewGame before playing.
func New(seed uint64, maxRounds int) *Game {
	src := &rand.PCGSource{}
	src.Seed(seed)
	return &Game{
		Turn:      -1,
		Counter:   -1,
		Winner:    Ongoing,
		MaxRounds: maxRounds,
		NumCells:  -1,
		src:       src,
		rng:       rand.New(src),
	}
}

// NewGame replaces the whole state with a freshly generated board of numCells cells.
func (g *Game) NewGame(numCells int, density, holeProbability float64) error {
	board, err := generator.Generate(numCells, density, holeProbability, g.rng)
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}
	g.Owners = board.Owners
	g.Masses = board.Masses
	g.Neighbors = board.Neighbors
	g.TotalMasses = board.TotalMasses
	g.StartingIndices = board.StartingIndices
	g.NumCells = board.NumCells()
	g.positions = board.Positions
	g.width = board.Width
	g.height = board.Height
	g.connectivity = board.Connectivity

	g.Winner = Ongoing
	g.Counter = 0
	g.Turn = 1
	return nil
}

// Clone returns a deep copy sharing no mutable state with g.
func (g *Game) Clone() *Game {
	neighbors := make([][]int, len(g.Neighbors))
	for i, nbs := range g.Neighbors {
		neighbors[i] = slices.Clone(nbs)
	}
	var starting [3][]int
	for i, indices := range g.StartingIndices {
		starting[i] = slices.Clone(indices)
	}
	src := *g.src

	return &Game{
		Owners:          slices.Clone(g.Owners),
		Masses:          slices.Clone(g.Masses),
		Neighbors:       neighbors,
		TotalMasses:     g.TotalMasses,
		StartingIndices: starting,
		Turn:            g.Turn,
		Counter:         g.Counter,
		Winner:          g.Winner,
		MaxRounds:       g.MaxRounds,
		NumCells:        g.NumCells,
		positions:       g.positions,
		width:           g.width,
		height:          g.height,
		connectivity:    g.connectivity,
		src:             &src,
		rng:             rand.New(&src),
	}
}

// PlayerCells returns the indices of the cells owned by player.
func (g *Game) PlayerCells(player int) []int {
	var cells []int
	for i, owner := range g.Owners {
		if owner == player {
			cells = append(cells, i)
		}
	}
	return cells
}

// PlayerStartingCells returns the indices of the cells player owned at the start of the game.
func (g *Game) PlayerStartingCells(player int) []int {
	return slices.Clone(g.StartingIndices[player])
}

func (g *Game) IsNeighbor(a, b int) bool {
	return slices.Contains(g.Neighbors[a], b)
}

func (g *Game) Owner(cell int) int {
	return g.Owners[cell]
}

func (g *Game) IsOwnedBy(cell, player int) bool {
	return g.Owners[cell] == player
}

func (g *Game) TotalMass(player int) int {
	return g.TotalMasses[player]
}

// CellsOwned returns the number of cells owned by player.
func (g *Game) CellsOwned(player int) int {
	count := 0
	for _, owner := range g.Owners {
		if owner == player {
			count++
		}
	}
	return count
}

func (g *Game) CurrentPlayer() int {
	return g.Turn
}

func (g *Game) IsDone() bool {
	return g.Winner != Ongoing
}

// BordersEnemyCells reports whether cell has a neighbor not owned by forPlayer.
func (g *Game) BordersEnemyCells(cell, forPlayer int) bool {
	for _, n := range g.Neighbors[cell] {
		if g.Owners[n] != forPlayer {
			return true
		}
	}
	return false
}

// Round is the number of completed rounds.
func (g *Game) Round() int {
	return g.Counter / 2
}

// PlayerRound is the number of moves player has made.
func (g *Game) PlayerRound(player int) int {
	if player == 1 {
		return utils.CeilDiv(g.Counter, 2)
	}
	return g.Counter / 2
}

// Sizes returns the size class index per cell.
func (g *Game) Sizes() []int {
	sizes := make([]int, len(g.Masses))
	for i, mass := range g.Masses {
		sizes[i] = SizeIndex(mass)
	}
	return sizes
}

// GUIInfo is a snapshot of what a renderer draws each frame.
type GUIInfo struct {
	Owners      []int
	Masses      []int
	Sizes       []int
	TotalMasses [3]int
	Round       int
}

func (g *Game) GUIInfo() GUIInfo {
	return GUIInfo{
		Owners:      slices.Clone(g.Owners),
		Masses:      slices.Clone(g.Masses),
		Sizes:       g.Sizes(),
		TotalMasses: g.TotalMasses,
		Round:       g.Round(),
	}
}

// Layout is the static part of the board a renderer needs once per game.
type Layout struct {
	Positions []generator.Position
	Width     int
	Height    int
	Neighbors [][]int
}

func (g *Game) Layout() Layout {
	neighbors := make([][]int, len(g.Neighbors))
	for i, nbs := range g.Neighbors {
		neighbors[i] = slices.Clone(nbs)
	}
	return Layout{
		Positions: slices.Clone(g.positions),
		Width:     g.width,
		Height:    g.height,
		Neighbors: neighbors,
	}
}

// Connectivity reports whether the generated board is fully connected.
func (g *Game) Connectivity() generator.Connectivity {
	return g.connectivity
}

// Cell is a read-only view of a single cell.
type Cell struct {
	Index     int
	Owner     int
	Mass      int
	SizeIndex int
	Neighbors []int
}

func (g *Game) Cell(i int) Cell {
	return Cell{
		Index:     i,
		Owner:     g.Owners[i],
		Mass:      g.Masses[i],
		SizeIndex: SizeIndex(g.Masses[i]),
		Neighbors: slices.Clone(g.Neighbors[i]),
	}
}

// PlayerCellViews returns views of the cells owned by player.
func (g *Game) PlayerCellViews(player int) []Cell {
	var cells []Cell
	for _, i := range g.PlayerCells(player) {
		cells = append(cells, g.Cell(i))
	}
	return cells
}

func (g *Game) Hash() StateHash {
	hasher := fnv.New64a()

	buf := make([]byte, 0, 8*(2+len(g.Owners)+len(g.Masses)))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(g.Turn))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(g.Counter))
	for _, owner := range g.Owners {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(owner))
	}
	for _, mass := range g.Masses {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(mass))
	}
	hasher.Write(buf)

	return StateHash(hasher.Sum64())
}

// Validate checks that TotalMasses matches the masses of the cells.
func (g *Game) Validate() error {
	var sums [3]int
	for i, owner := range g.Owners {
		if owner < 0 || owner > 2 {
			return fmt.Errorf("cell %d has owner %d", i, owner)
		}
		sums[owner] += g.Masses[i]
	}
	if sums != g.TotalMasses {
		return fmt.Errorf("total masses %v, cells hold %v", g.TotalMasses, sums)
	}
	return nil
}

func (g *Game) mustValidate() {
	if err := g.Validate(); err != nil {
		panic(fmt.Sprintf("mass invariant broken at move %d: %v", g.Counter, err))
	}
}
