package game

const (
	Draw    = 0
	Ongoing = -1

	SizeCap                   = 350 // Cells above this mass decay
	OverCapDecay              = 5
	WhenSafeGrowthPerNeighbor = 10

	AttackMul     = 0.8 // Share of the attacking mass that arrives
	DefAttackMul  = 0.8 // Share of the arriving mass a defender loses on a failed attack
	SucDefenseMul = 0.9 // Share of the defender mass an attack loses on success
)

type StateHash uint64

// Evaluates the game to a score between -1 and 1 indicating how favorable the
// position of player is to a winning (positive) outcome.
type Evaluate func(g *Game, player int) float64

// Opponent returns the other player.
func Opponent(player int) int {
	return 3 - player
}
