package generator

import (
	"fmt"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

const empty = -1

// layout is the grid under construction.
type layout struct {
	width     int
	height    int
	grid      [][]int // grid[x][y] holds a cell index or empty
	positions []Position
	neighbors [][]int
}

func newLayout(numCells, width, height int) *layout {
	grid := make([][]int, width)
	for x := range grid {
		grid[x] = make([]int, height)
		for y := range grid[x] {
			grid[x][y] = empty
		}
	}
	return &layout{
		width:     width,
		height:    height,
		grid:      grid,
		positions: make([]Position, numCells),
		neighbors: make([][]int, numCells),
	}
}

func (l *layout) inside(x, y int) bool {
	return 0 <= x && x < l.width && 0 <= y && y < l.height
}

func (l *layout) at(x, y int) int {
	return l.grid[x][y]
}

// mirrorAt returns the cell at the position mirrored to (x, y).
func (l *layout) mirrorAt(x, y int) int {
	return l.grid[l.width-1-x][l.height-1-y]
}

func (l *layout) put(x, y, cell int) {
	l.grid[x][y] = cell
	l.positions[cell] = Position{X: x, Y: y}
}

// place puts cells[0] at (x, y) and cells[1] at the mirrored position.
func (l *layout) place(x, y int, cells [2]int) {
	l.put(x, y, cells[0])
	l.put(l.width-1-x, l.height-1-y, cells[1])
}

// connect adds an undirected edge. Self loops and duplicate edges are ignored.
func (l *layout) connect(a, b int) {
	if a == b || slices.Contains(l.neighbors[a], b) {
		return
	}
	l.neighbors[a] = append(l.neighbors[a], b)
	l.neighbors[b] = append(l.neighbors[b], a)
}

// connectPairs links cells[i] with others[i].
func (l *layout) connectPairs(cells, others [2]int) {
	l.connect(cells[0], others[0])
	l.connect(cells[1], others[1])
}

// neighbor is the latest cell pair met in a row or column, waiting to be linked to the
// next cell found in the same line. Every hole passed in between casts a vote on whether
// the link survives; ties keep it.
type neighbor struct {
	cells      [2]int // A cell and its mirror
	holeWeight int
}

type slot int

const (
	cellSlot slot = iota
	holeSlot
	centerSlot
)

// shuffledSlots returns size slots, count of them holding cells.
func shuffledSlots(count, size int, rng *rand.Rand) []slot {
	slots := make([]slot, size)
	for i := count; i < size; i++ {
		slots[i] = holeSlot
	}
	rng.Shuffle(len(slots), func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})
	return slots
}

// populate fills the grid column by column from the left edge to the middle column.
// Each created cell is paired with its mirror, taken from the other end of the indices.
func populate(l *layout, counts []int, holeProbability float64, rng *rand.Rand) error {
	next, last := 0, len(l.positions)-1
	pair := func() [2]int {
		cells := [2]int{next, last}
		next++
		last--
		return cells
	}
	vote := func(nbs ...*neighbor) {
		for _, n := range nbs {
			if n == nil {
				continue
			}
			if rng.Float64() < holeProbability {
				n.holeWeight--
			} else {
				n.holeWeight++
			}
		}
	}
	link := func(cells [2]int, nbs ...*neighbor) {
		for _, n := range nbs {
			if n != nil && n.holeWeight >= 0 {
				l.connectPairs(cells, n.cells)
			}
		}
	}

	horizontal := make([]*neighbor, l.height)
	var vertical *neighbor

	// The first column keeps its vertical links across holes
	for y, s := range shuffledSlots(counts[0], l.height, rng) {
		if s == holeSlot {
			continue
		}
		cells := pair()
		l.place(0, y, cells)
		horizontal[y] = &neighbor{cells: cells}
		link(cells, vertical)
		vertical = &neighbor{cells: cells}
	}

	middle := len(counts) - 1
	for x := 1; x < middle; x++ {
		vertical = nil
		for y, s := range shuffledSlots(counts[x], l.height, rng) {
			if s == holeSlot {
				vote(vertical, horizontal[y])
				continue
			}
			cells := pair()
			l.place(x, y, cells)
			link(cells, vertical, horizontal[y])
			vertical = &neighbor{cells: cells}
			horizontal[y] = &neighbor{cells: cells}
		}
	}

	// The middle column mirrors onto itself, only its upper half is drawn
	count := counts[middle]
	slots := shuffledSlots(count/2, l.height/2, rng)
	if l.height%2 == 1 {
		if count%2 == 1 {
			slots = append(slots, centerSlot)
		} else {
			slots = append(slots, holeSlot)
		}
	}

	h := l.height - 1
	vertical = nil
	for y, s := range slots {
		left, right := horizontal[y], horizontal[h-y]
		// The row's last cell on the right side is the mirror of the left cell of row h-y
		if right != nil {
			right.cells[0], right.cells[1] = right.cells[1], right.cells[0]
		}

		if s == holeSlot {
			if left != nil && right != nil {
				weight := left.holeWeight + right.holeWeight
				if rng.Float64() < holeProbability {
					weight--
				} else {
					weight++
				}
				if weight >= 0 {
					if left == right {
						l.connect(left.cells[0], left.cells[1])
					} else {
						l.connectPairs(left.cells, right.cells)
					}
				}
			}
			vote(vertical)
			continue
		}

		var cells [2]int
		if s == centerSlot {
			cells = [2]int{next, next}
			next++
			l.put(middle, y, cells[0])
			right = nil
		} else {
			cells = pair()
			l.place(middle, y, cells)
		}
		link(cells, vertical, left, right)
		vertical = &neighbor{cells: cells}
	}

	if next != last+1 {
		return fmt.Errorf("placed %d of %d cells: %w", next+len(l.positions)-1-last, len(l.positions), ErrInfeasibleLayout)
	}
	return nil
}
