package mob

import (
	"context"

	"catoworld/server/internal/sleep"
	"catoworld/server/internal/world"
	"catoworld/server/logging"
	logbehavior "catoworld/server/logging/behavior"
)

// SleepState surface.

func (m *CatoMob) Sleeping() bool { return m.sleeping }

func (m *CatoMob) SleepPos() world.BlockPos { return m.sleepPos }

func (m *CatoMob) SleepDesireActive() bool { return m.sleepDesireTicks > 0 }

func (m *CatoMob) SleepMemory() *sleep.Memory       { return m.memory }
func (m *CatoMob) SleepBlacklist() *sleep.Blacklist { return m.blacklist }

// BeginSleepingAt commits the mob to sleep at pos: snaps it onto the cell,
// arms the duration timer and window grace, and clears everything combat.
func (m *CatoMob) BeginSleepingAt(pos world.BlockPos) {
	s := m.cfg.Sleep
	m.sleeping = true
	m.sleepPos = pos
	m.pos = pos.Center()
	m.sleepDesireTicks = 0
	m.target = nil
	m.angerTicks = 0
	m.attack = attackState{}
	m.nav.Stop()

	duration := world.RandomTicks(m.rng, s.MinTicks, s.MaxTicks)
	if duration <= 0 {
		duration = 100
	}
	m.sleepTicksRemaining = duration
	m.windowGraceTicks = world.RandomTicks(m.rng, s.WindowGraceMinTicks, s.WindowGraceMaxTicks)

	logbehavior.SleepCommitted(context.Background(), m.pub, m.tick,
		logging.MobRef(m.id), logbehavior.SleepCommittedPayload{
			Spot:          logbehavior.SpotPayload{X: pos.X, Y: pos.Y, Z: pos.Z},
			DurationTicks: duration,
		})
}

// AbortSleepSearch drops the desire window and holds off the next roll.
func (m *CatoMob) AbortSleepSearch(cooldownTicks int) {
	m.sleepDesireTicks = 0
	if cooldownTicks > 0 {
		m.sleepCooldownUntil = m.tick + uint64(cooldownTicks)
	}
}

// FreezePose pins the sleeping mob in place. Navigation is cut and LookAt
// refuses while sleeping, so position and rotation cannot drift.
func (m *CatoMob) FreezePose() {
	m.nav.Stop()
}

// wake clears all sleep state and arms the retry cooldown.
func (m *CatoMob) wake(reason string) {
	if !m.sleeping {
		return
	}
	m.sleeping = false
	m.sleepTicksRemaining = 0
	m.sleepDesireTicks = 0
	m.windowGraceTicks = 0
	if cd := m.cfg.Sleep.RetryCooldownTicks; cd > 0 {
		m.sleepCooldownUntil = m.tick + uint64(cd)
	}
	logbehavior.SleepWoke(context.Background(), m.pub, m.tick, logging.MobRef(m.id), reason)
}

// tickSleeping evaluates the wake triggers and runs down the duration
// timer. Target and anger were already cleared by the caller.
func (m *CatoMob) tickSleeping() {
	s := m.cfg.Sleep
	block := m.sleepPos

	if m.nav.InProgress() {
		m.wake("navigation")
		return
	}
	if s.WakeAirborne && m.airborne(block) {
		m.wake("airborne")
		return
	}
	if s.WakeUnderwater && m.w.InFluid(block.Above(1)) {
		m.wake("underwater")
		return
	}
	if s.WakeTouchingWater && m.w.InFluid(block) {
		m.wake("touching_water")
		return
	}
	if s.WakeInSunlight && m.w.IsDay() && m.w.CanSeeSky(block) {
		m.wake("sunlight")
		return
	}

	// A sustained day/night flip ends the nap once the grace runs out.
	if !s.SleepsNow(m.w.IsDay()) {
		if m.windowGraceTicks > 0 {
			m.windowGraceTicks--
		} else {
			m.wake("window")
			return
		}
	} else if m.windowGraceTicks <= 0 {
		m.windowGraceTicks = world.RandomTicks(m.rng, s.WindowGraceMinTicks, s.WindowGraceMaxTicks)
	}

	m.sleepTicksRemaining--
	if m.sleepTicksRemaining > 0 {
		return
	}
	if s.ContinueChance > 0 && world.RandomFloat(m.rng) < s.ContinueChance {
		extend := world.RandomTicks(m.rng, s.MinTicks, s.MaxTicks)
		if extend <= 0 {
			extend = 100
		}
		m.sleepTicksRemaining = extend
		return
	}
	m.wake("rested")
}

func (m *CatoMob) airborne(p world.BlockPos) bool {
	ground := m.w.BlockAt(p.Below(1))
	return !ground.Solid() && !ground.Fluid()
}

// tickSleepDesire rolls for sleepiness while the mob is awake and calm, and
// commits in place when no search is needed.
func (m *CatoMob) tickSleepDesire() {
	s := m.cfg.Sleep
	if !s.Enabled || m.sleeping {
		return
	}
	if m.sleepDesireTicks > 0 {
		m.sleepDesireTicks--
		return
	}
	if m.Aggressive() || m.fleeTicks > 0 {
		return
	}
	if m.tick < m.sleepCooldownUntil || m.tick < m.nextSleepAttemptTick {
		return
	}
	if !s.SleepsNow(m.w.IsDay()) {
		return
	}
	block := m.pos.Block()
	if !m.w.Standable(block, 1) && !(s.InWaterAllowed && m.w.InFluid(block)) {
		return
	}

	interval := s.AttemptIntervalTicks
	if interval <= 0 {
		interval = 40
	}
	m.nextSleepAttemptTick = m.tick + uint64(interval)
	if world.RandomFloat(m.rng) >= s.Chance {
		return
	}

	window := s.DesireWindowTicks
	if window <= 0 {
		window = 200
	}
	m.sleepDesireTicks = window

	// No roof needed, or already under one: skip the search entirely.
	if !s.RequiresRoof || m.roofedHere(block) {
		req := m.sleepRequest(block)
		if _, ok := sleep.Validate(req, block); ok {
			m.BeginSleepingAt(block)
		}
	}
}

func (m *CatoMob) roofedHere(block world.BlockPos) bool {
	depth, ok := m.w.RoofAbove(block, m.cfg.Sleep.RoofScanHeight)
	return ok && depth >= m.cfg.Sleep.Headroom
}

func (m *CatoMob) sleepRequest(block world.BlockPos) sleep.Request {
	anchor := block
	homeRadius := 0.0
	if m.hasHome {
		anchor = m.home
		homeRadius = m.cfg.Wander.HomeRadius
	}
	return sleep.Request{
		World:      m.w,
		SelfID:     m.id,
		MobPos:     block,
		Anchor:     anchor,
		HomeRadius: homeRadius,
		Species:    m.cfg,
		Memory:     m.memory,
		Blacklist:  m.blacklist,
		Near:       m.pop,
		Profile: world.PathProfile{
			Headroom: m.cfg.Sleep.Headroom,
			CanSwim:  m.cfg.Sleep.InWaterAllowed,
		},
		RNG:  m.rng,
		Tick: m.tick,
	}
}
