package goal

type GoalStatus string

const (
	StatusInProgress GoalStatus = "in-progress"
	StatusAchieved   GoalStatus = "achieved"
)

type Goal struct {
	ID            string
	Name          string
	TargetAmount  int64
	CurrentAmount int64
	Status        GoalStatus
}

// Progress is the saved amount as a percentage of the target. A zero target
// yields 0.
func Progress(g Goal) int {
	if g.TargetAmount <= 0 {
		return 0
	}
	return int(g.CurrentAmount * 100 / g.TargetAmount)
}

// Headroom is the remaining capacity of the goal.
func Headroom(g Goal) int64 {
	return g.TargetAmount - g.CurrentAmount
}
