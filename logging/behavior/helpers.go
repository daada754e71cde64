package behavior

import (
	"context"

	"catoworld/server/logging"
)

const (
	SleepCommittedEventType  logging.EventType = "behavior.sleep_committed"
	SleepWokeEventType       logging.EventType = "behavior.sleep_woke"
	SpotStruckEventType      logging.EventType = "behavior.spot_struck"
	SearchExhaustedEventType logging.EventType = "behavior.search_exhausted"
	FleeStartedEventType     logging.EventType = "behavior.flee_started"
	ShelterSettledEventType  logging.EventType = "behavior.shelter_settled"
	AttackStartedEventType   logging.EventType = "combat.attack_started"
	AttackLandedEventType    logging.EventType = "combat.attack_landed"
)

type SpotPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

type SleepCommittedPayload struct {
	Spot          SpotPayload `json:"spot"`
	DurationTicks int         `json:"durationTicks"`
	FromMemory    bool        `json:"fromMemory"`
}

func SleepCommitted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SleepCommittedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     SleepCommittedEventType,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryBehavior,
		Payload:  payload,
	})
}

type SleepWokePayload struct {
	Reason string `json:"reason"`
}

func SleepWoke(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, reason string) {
	publish(ctx, pub, logging.Event{
		Type:     SleepWokeEventType,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryBehavior,
		Payload:  SleepWokePayload{Reason: reason},
	})
}

type SpotStruckPayload struct {
	Spot    SpotPayload `json:"spot"`
	Strikes int         `json:"strikes"`
	Source  string      `json:"source"`
}

func SpotStruck(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SpotStruckPayload) {
	publish(ctx, pub, logging.Event{
		Type:     SpotStruckEventType,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryBehavior,
		Payload:  payload,
	})
}

type SearchExhaustedPayload struct {
	Search      string `json:"search"`
	BudgetSpent int    `json:"budgetSpent"`
}

func SearchExhausted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, search string, budgetSpent int) {
	publish(ctx, pub, logging.Event{
		Type:     SearchExhaustedEventType,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryBehavior,
		Payload:  SearchExhaustedPayload{Search: search, BudgetSpent: budgetSpent},
	})
}

type FleeStartedPayload struct {
	Propagated bool `json:"propagated"`
	LowHealth  bool `json:"lowHealth"`
}

func FleeStarted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, threat logging.EntityRef, payload FleeStartedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     FleeStartedEventType,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{threat},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryBehavior,
		Payload:  payload,
	})
}

type ShelterSettledPayload struct {
	Spot       SpotPayload `json:"spot"`
	CoverDepth int         `json:"coverDepth"`
}

func ShelterSettled(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ShelterSettledPayload) {
	publish(ctx, pub, logging.Event{
		Type:     ShelterSettledEventType,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryBehavior,
		Payload:  payload,
	})
}

type AttackPayload struct {
	Kind   string  `json:"kind"`
	Damage float64 `json:"damage,omitempty"`
	Hit    bool    `json:"hit,omitempty"`
}

func AttackStarted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, kind string) {
	publish(ctx, pub, logging.Event{
		Type:     AttackStartedEventType,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  AttackPayload{Kind: kind},
	})
}

func AttackLanded(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, kind string, damage float64, hit bool) {
	publish(ctx, pub, logging.Event{
		Type:     AttackLandedEventType,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  AttackPayload{Kind: kind, Damage: damage, Hit: hit},
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event)
}
