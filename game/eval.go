package game

import "math"

// EvaluateResources tallies each player's cells and mass to produce a relative score
// between -1 and 1 from the perspective of player.
func EvaluateResources(g *Game, player int) float64 {
	if score, over := terminalScore(g, player); over {
		return score
	}
	territoryScore, massScore := g.calculateResourceScores(player)

	return (territoryScore + massScore) / 2
}

// EvaluateBorderStrength considers each player's border strength, in addition to controlled
// resources.
func EvaluateBorderStrength(g *Game, player int) float64 {
	if score, over := terminalScore(g, player); over {
		return score
	}
	territoryScore, massScore := g.calculateResourceScores(player)
	borderScore := g.calculateBorderScore(player)

	return (territoryScore + massScore + borderScore) / 3
}

// EvaluateConnectivity considers the size of each player's largest connected territory, in
// addition to controlled resources.
func EvaluateConnectivity(g *Game, player int) float64 {
	if score, over := terminalScore(g, player); over {
		return score
	}
	territoryScore, massScore := g.calculateResourceScores(player)
	connectivityScore := g.calculateConnectivityScore(player)

	return (territoryScore + massScore + connectivityScore) / 3
}

// EvaluateAll combines territory, mass, border strength and connectivity.
func EvaluateAll(g *Game, player int) float64 {
	if score, over := terminalScore(g, player); over {
		return score
	}
	territoryScore, massScore := g.calculateResourceScores(player)
	borderScore := g.calculateBorderScore(player)
	connectivityScore := g.calculateConnectivityScore(player)

	return (territoryScore + massScore + borderScore + connectivityScore) / 4
}

// Evaluations names the evaluation functions a sampler can be configured with.
var Evaluations = map[string]Evaluate{
	"all":          EvaluateAll,
	"resources":    EvaluateResources,
	"border":       EvaluateBorderStrength,
	"connectivity": EvaluateConnectivity,
}

func terminalScore(g *Game, player int) (float64, bool) {
	switch g.Winner {
	case Ongoing:
		return 0, false
	case Draw:
		return 0, true
	case player:
		return 1, true
	default:
		return -1, true
	}
}

func (g *Game) calculateResourceScores(player int) (territoryScore, massScore float64) {
	opponent := Opponent(player)
	territoryScore = normalize(float64(g.CellsOwned(player)), float64(g.CellsOwned(opponent)))
	massScore = normalize(float64(g.TotalMasses[player]), float64(g.TotalMasses[opponent]))
	return territoryScore, massScore
}

func (g *Game) calculateBorderScore(player int) float64 {
	opponent := Opponent(player)
	borderStrength := make(map[int]float64) // By player

	for cell, owner := range g.Owners {
		if owner != player && owner != opponent {
			continue
		}

		myMass := float64(g.Masses[cell]) * AttackMul
		enemyBorders := 0
		massDiff := 0.0
		// Mass difference with every foreign neighbor mimics a line of attack
		for _, neighbor := range g.Neighbors[cell] {
			if g.Owners[neighbor] != owner {
				enemyBorders++
				massDiff += myMass - float64(g.Masses[neighbor])
			}
		}
		// Favor, but not too much, multiple lines of attack
		if enemyBorders > 0 {
			borderStrength[owner] += massDiff / math.Sqrt(float64(enemyBorders))
		}
	}

	return normalize(borderStrength[player], borderStrength[opponent])
}

func (g *Game) calculateConnectivityScore(player int) float64 {
	opponent := Opponent(player)
	connectivity := make(map[int]float64)

	for _, p := range []int{player, opponent} {
		visited := make([]bool, g.NumCells)
		maxComponent := 0
		for cell, owner := range g.Owners {
			if owner == p && !visited[cell] {
				maxComponent = max(maxComponent, g.dfs(cell, p, visited))
			}
		}
		connectivity[p] = float64(maxComponent)
	}

	return normalize(connectivity[player], connectivity[opponent])
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := math.Abs(value) + math.Abs(otherValue)
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}

// dfs returns the size of the territory of owner reachable from start
func (g *Game) dfs(start, owner int, visited []bool) int {
	if visited[start] {
		return 0
	}
	visited[start] = true

	size := 1
	for _, neighbor := range g.Neighbors[start] {
		if g.Owners[neighbor] == owner {
			size += g.dfs(neighbor, owner, visited)
		}
	}
	return size
}
