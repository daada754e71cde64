package sleep

import (
	"catoworld/server/internal/world"
)

// FindBuddySpot is the standalone adjacent-to-sleeping-buddy search. The
// search goal prefers it over the full finder right before committing, so a
// mob that walked to a solitary spot can still end up next to a buddy that
// fell asleep in the meantime.
func FindBuddySpot(req Request) (Result, bool) {
	if req.World == nil || req.Species == nil {
		return Result{}, false
	}
	budget := world.NewPathBudget(req.Species.Sleep.PathBudget)
	res, ok := buddyJoinPass(req, budget)
	if !ok {
		return Result{}, false
	}
	res.BudgetSpent = budget.Spent()
	return res, true
}
