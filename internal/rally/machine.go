// Package rally runs the scripted rally and keeps score.
//
// States cycle Serving → InRally → RallyEnded → Resetting → Serving.
// Delayed transitions are one-shot timers on the simulation timer queue;
// their callbacks only change state, and the next Tick does the work.
package rally

import (
	"math/rand/v2"
	"time"

	"smartcourt/internal/agent"
	"smartcourt/internal/events"
	"smartcourt/internal/scene"
	"smartcourt/internal/skeleton"
	"smartcourt/internal/timer"
	"smartcourt/internal/trajectory"
)

// State is the rally phase.
type State int

const (
	Serving State = iota
	InRally
	RallyEnded
	Resetting
)

func (s State) String() string {
	switch s {
	case Serving:
		return "serving"
	case InRally:
		return "in_rally"
	case RallyEnded:
		return "rally_ended"
	case Resetting:
		return "resetting"
	}
	return "unknown"
}

// Default delays.
const (
	RallyResetDelay = 1200 * time.Millisecond
	ScoreResetDelay = 1600 * time.Millisecond
)

// Config tunes the machine. Zero fields take the reference values.
type Config struct {
	PointsToWin     int
	RallyResetDelay time.Duration
	ScoreResetDelay time.Duration
	Outcome         OutcomeFunc
}

func (c *Config) defaults() {
	if c.PointsToWin <= 0 {
		c.PointsToWin = PointsToWin
	}
	if c.RallyResetDelay <= 0 {
		c.RallyResetDelay = RallyResetDelay
	}
	if c.ScoreResetDelay <= 0 {
		c.ScoreResetDelay = ScoreResetDelay
	}
	if c.Outcome == nil {
		c.Outcome = CoinFlip(rand.New(rand.NewPCG(1, 2)))
	}
}

// Machine owns rally progress and score. It mutates the scene it was
// built with and must only be driven from one goroutine.
type Machine struct {
	cfg    Config
	scene  *scene.Scene
	script trajectory.Script
	timers *timer.Queue
	events *events.Queue

	state       State
	index       int
	progress    float64
	lastHitter  Player
	score       Score
	resetQueued bool
	rallies     int
	elapsed     float64
}

// New returns a machine in Serving with the ball on the first shot.
func New(sc *scene.Scene, script trajectory.Script, timers *timer.Queue, evq *events.Queue, cfg Config) *Machine {
	cfg.defaults()
	m := &Machine{
		cfg:    cfg,
		scene:  sc,
		script: script,
		timers: timers,
		events: evq,
	}
	m.resetRally()
	return m
}

// Tick advances the rally by dt seconds; elapsed is the total simulated
// time and drives the gait cycle.
func (m *Machine) Tick(dt, elapsed float64) {
	m.elapsed = elapsed
	switch m.state {
	case RallyEnded:
		return
	case Resetting:
		m.resetRally()
		m.emit(events.Event{Type: events.EventRallyReset, Pos: m.scene.Ball})
		return
	case Serving:
		if len(m.script) == 0 {
			m.endRally()
			return
		}
		m.state = InRally
		m.contact()
	}
	m.advance(dt)
}

func (m *Machine) advance(dt float64) {
	seg := m.script[m.index]
	m.progress = trajectory.Advance(m.progress, dt)
	m.scene.Ball = trajectory.PositionAt(seg, m.progress)
	m.scene.Trail.Leave(m.scene.Ball)

	hitter := hitterFor(m.index)
	hRig, rRig := m.rig(hitter), m.rig(hitter.Other())
	agent.MoveToward(hRig, seg.Start, dt)
	agent.MoveToward(rRig, seg.End, dt)
	agent.Gait(hRig, m.elapsed)
	agent.Gait(rRig, m.elapsed)
	agent.Swing(hRig, agent.SwingWindow(m.progress))

	if m.progress < 1 {
		return
	}
	m.lastHitter = hitter
	m.index++
	m.progress = 0
	if m.index >= len(m.script) {
		m.endRally()
		return
	}
	m.scene.Ball = m.script[m.index].Start
	m.contact()
}

func (m *Machine) contact() {
	m.emit(events.Event{
		Type:    events.EventContact,
		Player:  hitterFor(m.index).String(),
		Segment: m.index,
		Pos:     m.scene.Ball,
	})
}

func (m *Machine) endRally() {
	m.state = RallyEnded
	m.rallies++

	receiver := m.lastHitter.Other()
	winner := m.cfg.Outcome(Result{
		LastHitter:  m.lastHitter,
		Landing:     m.script.Landing(),
		ReceiverPos: m.rig(receiver).Position,
	})
	reached := m.score.Award(winner, m.cfg.PointsToWin)
	m.emit(events.Event{Type: events.EventPoint, Player: winner.String(), Pos: m.scene.Ball})

	if reached {
		m.emit(events.Event{Type: events.EventGameWon, Player: winner.String()})
		if !m.resetQueued {
			m.resetQueued = true
			m.timers.Schedule(m.cfg.ScoreResetDelay, func() {
				m.resetQueued = false
				m.score = Score{}
				m.emit(events.Event{Type: events.EventScoreReset})
			})
		}
	}
	m.timers.Schedule(m.cfg.RallyResetDelay, func() {
		m.state = Resetting
	})
}

// resetRally puts players, trail and ball back at the start of the script.
func (m *Machine) resetRally() {
	m.scene.ResetPlayers()
	m.scene.Trail.Clear()
	m.index = 0
	m.progress = 0
	m.lastHitter = PlayerA
	m.scene.Ball = m.script.Start()
	m.scene.Trail.Leave(m.scene.Ball)
	m.state = Serving
}

func (m *Machine) rig(p Player) *skeleton.Rig {
	if p == PlayerB {
		return m.scene.PlayerB
	}
	return m.scene.PlayerA
}

func (m *Machine) emit(e events.Event) {
	if m.events == nil {
		return
	}
	e.ScoreA, e.ScoreB = m.score.A, m.score.B
	e.Elapsed = m.elapsed
	m.events.Push(e)
}

// hitterFor returns who strikes shot i: A on even shots, B on odd.
func hitterFor(i int) Player {
	if i%2 == 1 {
		return PlayerB
	}
	return PlayerA
}

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Index returns the current shot index.
func (m *Machine) Index() int { return m.index }

// Progress returns progress through the current shot; it may exceed 1
// only transiently inside Tick.
func (m *Machine) Progress() float64 { return m.progress }

// Score returns the current score.
func (m *Machine) Score() Score { return m.score }

// LastHitter returns who struck the most recently completed shot.
func (m *Machine) LastHitter() Player { return m.lastHitter }

// Rallies returns how many rallies have ended.
func (m *Machine) Rallies() int { return m.rallies }

// PointsToWin returns the configured threshold.
func (m *Machine) PointsToWin() int { return m.cfg.PointsToWin }

// Script returns the rally being played.
func (m *Machine) Script() trajectory.Script { return m.script }
