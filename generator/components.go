package generator

import (
	"cmp"

	"cellwars/utils"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

type component struct {
	cells   []int
	indices map[int]struct{}
}

func newComponent() *component {
	return &component{indices: make(map[int]struct{})}
}

func (c *component) add(cell int) {
	c.cells = append(c.cells, cell)
	c.indices[cell] = struct{}{}
}

func (c *component) has(cell int) bool {
	_, ok := c.indices[cell]
	return ok
}

// findComponents returns the connected components and the component of every cell.
func findComponents(neighbors [][]int) ([]*component, []*component) {
	var all []*component
	cellToComp := make([]*component, len(neighbors))

	for start := range neighbors {
		if cellToComp[start] != nil {
			continue
		}
		comp := newComponent()
		stack := []int{start}
		for len(stack) > 0 {
			c := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if cellToComp[c] != nil {
				continue
			}
			cellToComp[c] = comp
			comp.add(c)
			for _, nb := range neighbors[c] {
				if cellToComp[nb] == nil {
					stack = append(stack, nb)
				}
			}
		}
		all = append(all, comp)
	}
	return all, cellToComp
}

type direction struct {
	dx, dy int
}

var directions = [...]direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// connectComponents links components of the layout until one is left. Links are searched
// along rows and columns and added together with their mirrored link.
//
// In strict mode the component holding cell 0 is grown first and the call fails as soon
// as it cannot reach another component. Otherwise the smallest components go first and
// those that cannot reach anything are left alone.
func connectComponents(l *layout, rng *rand.Rand, strict bool) bool {
	all, cellToComp := findComponents(l.neighbors)
	var stranded []*component

	merge := func(from, into *component) {
		if from == into {
			return
		}
		for _, c := range from.cells {
			into.add(c)
			cellToComp[c] = into
		}
	}
	drop := func(comp *component) {
		var ok bool
		if all, ok = utils.Remove(all, comp); !ok {
			stranded, _ = utils.Remove(stranded, comp)
		}
	}

	for len(all) > 1 {
		// Larger in the front
		slices.SortStableFunc(all, func(a, b *component) int {
			return cmp.Compare(len(b.cells), len(a.cells))
		})
		var comp *component
		if strict {
			comp = cellToComp[0]
			drop(comp)
		} else {
			comp = all[len(all)-1]
			all = all[:len(all)-1]
		}

		active, ax, ay, found, fx, fy, ok := l.castRays(comp, rng)
		if !ok {
			if strict {
				return false
			}
			stranded = append(stranded, comp)
			continue
		}

		activeMirror := l.mirrorAt(ax, ay)
		cells := [2]int{active, activeMirror}
		comps := []*component{comp}
		if activeMirror != active {
			if found == activeMirror {
				l.connect(active, found)
				merge(comp, cellToComp[found])
				continue
			}
			if !comp.has(activeMirror) {
				other := cellToComp[activeMirror]
				if !other.has(found) {
					drop(other)
					comps = append(comps, other)
				}
			}
		}

		foundMirror := l.mirrorAt(fx, fy)
		mirrorJoined := slices.ContainsFunc(comps, func(c *component) bool {
			return c.has(foundMirror)
		})
		if found == foundMirror || mirrorJoined {
			if found == foundMirror && cells[0] == cells[1] {
				l.connect(active, found)
			} else {
				l.connectPairs(cells, [2]int{found, foundMirror})
			}
			target := cellToComp[found]
			for _, c := range comps {
				merge(c, target)
			}
			continue
		}

		l.connectPairs(cells, [2]int{found, foundMirror})
		foundComp, mirrorComp := cellToComp[found], cellToComp[foundMirror]
		if len(comps) == 1 {
			if foundComp != mirrorComp {
				drop(mirrorComp)
				comps = append(comps, mirrorComp)
			}
			for _, c := range comps {
				merge(c, foundComp)
			}
		} else {
			merge(comps[0], foundComp)
			merge(comps[1], mirrorComp)
		}
	}
	return true
}

// castRays looks from the cells of comp along the four axes for the first cell of another
// component. Cells of comp met on the way take over as the active cell, and the direction is
// not tried again from them.
func (l *layout) castRays(comp *component, rng *rand.Rand) (active, ax, ay, found, fx, fy int, ok bool) {
	order := slices.Clone(comp.cells)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	pending := make(map[int][]direction, len(order))
	for _, c := range order {
		pending[c] = slices.Clone(directions[:])
	}

	for k := len(order) - 1; k >= 0; k-- {
		start := order[k]
		dirs := pending[start]
		delete(pending, start)

		for len(dirs) > 0 {
			i := rng.Intn(len(dirs))
			dir := dirs[i]
			dirs = slices.Delete(dirs, i, i+1)

			active = start
			ax, ay = l.positions[start].X, l.positions[start].Y
			fx, fy = ax, ay
			for {
				fx += dir.dx
				fy += dir.dy
				if !l.inside(fx, fy) {
					break
				}
				c := l.at(fx, fy)
				if c == empty {
					continue
				}
				if comp.has(c) {
					if rest, waiting := pending[c]; waiting {
						if j := slices.Index(rest, dir); j >= 0 {
							pending[c] = slices.Delete(rest, j, j+1)
							active = c
							ax, ay = fx, fy
						}
					}
					continue
				}
				return active, ax, ay, c, fx, fy, true
			}
		}
	}
	return 0, 0, 0, 0, 0, 0, false
}
