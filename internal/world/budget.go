package world

// PathBudget caps the number of expensive reachability queries one search
// invocation may issue. Searches degrade to cheaper heuristics once it runs
// out instead of blowing the tick budget.
type PathBudget struct {
	remaining int
	spent     int
}

func NewPathBudget(limit int) *PathBudget {
	if limit < 0 {
		limit = 0
	}
	return &PathBudget{remaining: limit}
}

// TrySpend consumes one query if any budget remains. A nil budget is
// unlimited.
func (b *PathBudget) TrySpend() bool {
	if b == nil {
		return true
	}
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	b.spent++
	return true
}

func (b *PathBudget) Remaining() int {
	if b == nil {
		return 0
	}
	return b.remaining
}

func (b *PathBudget) Spent() int {
	if b == nil {
		return 0
	}
	return b.spent
}

func (b *PathBudget) Exhausted() bool {
	return b != nil && b.remaining <= 0
}
