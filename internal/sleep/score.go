package sleep

const (
	// awakeBuddyFactor discounts awake buddies relative to sleeping ones.
	awakeBuddyFactor = 3.0
	// strikePenaltyPerStrike taxes candidates the mob has struggled with.
	strikePenaltyPerStrike = 2.5
	// memoryRecencyBias nudges remembered spots ahead of fresh samples.
	memoryRecencyBias = 0.5
	// buddyProximityBonus rewards adjacency-ring candidates in the
	// buddy-join pass.
	buddyProximityBonus = 10.0
)

// BaseScore is the roof-tightness score before social terms; lower is
// better. A roof hugging the minimum headroom scores zero.
func BaseScore(roofDepth, minHeadroom int) float64 {
	depth := roofDepth - minHeadroom
	if depth < 0 {
		depth = 0
	}
	return float64(depth)
}

// SocialBonus converts buddy counts into a score reduction. Sleeping
// buddies count fully; awake ones a third as much.
func SocialBonus(sleepingBuddies, awakeBuddies int, buddyBonus float64) float64 {
	if buddyBonus <= 0 {
		return 0
	}
	return buddyBonus*float64(sleepingBuddies) + buddyBonus/awakeBuddyFactor*float64(awakeBuddies)
}

// StrikePenalty taxes a candidate the mob remembers failing at.
func StrikePenalty(strikes int) float64 {
	if strikes <= 0 {
		return 0
	}
	return strikePenaltyPerStrike * float64(strikes)
}

// FinalScore combines every term; lower is better.
func FinalScore(roofDepth, minHeadroom, sleepingBuddies, awakeBuddies int, buddyBonus float64, memoryStrikes int, fromMemory bool) float64 {
	score := BaseScore(roofDepth, minHeadroom)
	score -= SocialBonus(sleepingBuddies, awakeBuddies, buddyBonus)
	score += StrikePenalty(memoryStrikes)
	if fromMemory {
		score -= memoryRecencyBias
	}
	return score
}
