package searcher

import "math"

// Exploration is c² of UCB1. Rewards are evaluations in [-1, 1].
const Exploration = 2.0

// VirtualLoss is counted against a candidate while one of its episodes runs.
const VirtualLoss = -1.0

// ucb scores the candidates of a bandit visited N times in total.
type ucb struct {
	logN float64
}

func newUCB(visits float64) ucb {
	if visits <= 0 {
		panic("bandit has no visits")
	}
	return ucb{logN: math.Log(visits)}
}

// value = q/n + sqrt(c²·ln(N)/n)
func (u ucb) value(q, n float64) float64 {
	if n <= 0 {
		panic("candidate has no visits")
	}
	return q/n + math.Sqrt(Exploration*u.logN/n)
}
