package sequence

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
	"github.com/coreman2200/funtimes-arcanim/internal/tracker"
)

// clips end within this much of their nominal duration
const settle = 1e-9

type motion struct {
	v    *tracker.Interpolated
	to   float64
	ease tracker.Ease
}

// Player pushes a Program's animations into bound Interpolated values. It
// implements clock.Driver and is ticked before values advance.
type Player struct {
	State PlayerState

	prog  Program
	plan  [][]motion
	nowS  float64 // position within the current clip
	idx   int
	total float64

	values map[string]*tracker.Interpolated
	hooks  Hooks
	log    zerolog.Logger
}

// NewPlayer constructs a Player with provided hooks.
func NewPlayer(h Hooks, log zerolog.Logger) *Player {
	return &Player{
		State:  Idle,
		values: map[string]*tracker.Interpolated{},
		hooks:  h,
		log:    log,
	}
}

// SetHooks replaces the hooks.
func (p *Player) SetHooks(h Hooks) { p.hooks = h }

// Bind makes v addressable by name from Animation.Value.
func (p *Player) Bind(name string, v *tracker.Interpolated) error {
	if name == "" || v == nil {
		return diagnostics.Configf("bind", name, "name and value are required")
	}
	if _, dup := p.values[name]; dup {
		return diagnostics.Configf("bind", name, "value already bound")
	}
	p.values[name] = v
	return nil
}

// Load replaces the current program. Resets time and state to Idle.
func (p *Player) Load(prog Program) error {
	if len(prog.Clips) == 0 {
		return diagnostics.Configf("load", prog.Version, "program has no clips")
	}
	plan := make([][]motion, len(prog.Clips))
	for i, c := range prog.Clips {
		if c.DurationS < 0 || math.IsNaN(c.DurationS) || math.IsInf(c.DurationS, 0) {
			return diagnostics.Domainf("load", c.Name, "clip duration %v must be finite and non-negative", c.DurationS)
		}
		for _, a := range c.Animations {
			v, ok := p.values[a.Value]
			if !ok {
				return diagnostics.Configf("load", c.Name, "animation targets unbound value %q", a.Value)
			}
			ease, err := tracker.ParseEase(a.Ease)
			if err != nil {
				return err
			}
			plan[i] = append(plan[i], motion{v: v, to: a.To, ease: ease})
		}
	}
	total := prog.Duration()
	if prog.Loop && longest(prog.Clips) <= settle {
		return diagnostics.Configf("load", prog.Version, "looping program has no clip of nonzero length")
	}
	p.prog = prog
	p.plan = plan
	p.total = total
	p.reset()
	p.log.Debug().Int("clips", len(prog.Clips)).Float64("duration", total).Bool("loop", prog.Loop).Msg("program loaded")
	return nil
}

// Start begins the first clip. Starting a paused player resumes it; starting
// a finished one replays from the top.
func (p *Player) Start() error {
	switch p.State {
	case Running:
		return nil
	case Paused:
		return p.Resume()
	}
	if len(p.plan) == 0 {
		return diagnostics.Configf("start", "", "no program loaded")
	}
	p.reset()
	p.State = Running
	return p.enter(0)
}

// Pause holds clip progression and freezes the current clip's values where
// they are.
func (p *Player) Pause() {
	if p.State != Running {
		return
	}
	p.State = Paused
	for _, m := range p.plan[p.idx] {
		_ = m.v.Set(m.v.Get())
	}
}

// Resume continues the current clip's animations over its remaining time.
func (p *Player) Resume() error {
	if p.State != Paused {
		return nil
	}
	p.State = Running
	remain := math.Max(0, p.prog.Clips[p.idx].DurationS-p.nowS)
	for _, m := range p.plan[p.idx] {
		if err := m.v.AnimateTo(m.to, remain, m.ease); err != nil {
			return err
		}
	}
	return nil
}

// Stop stops and resets to start. Bound values keep their current value.
func (p *Player) Stop() {
	if len(p.plan) > 0 && p.State == Running {
		for _, m := range p.plan[p.idx] {
			_ = m.v.Set(m.v.Get())
		}
	}
	p.reset()
}

// Drive implements clock.Driver.
func (p *Player) Drive(dt float64) error { return p.Tick(dt) }

// Tick enters every clip whose start has been reached, then advances the
// timeline by dt seconds. Entering a clip at the start of the tick lets the
// previous clip's values land on their targets in the tick before.
func (p *Player) Tick(dt float64) error {
	if dt < 0 || math.IsNaN(dt) {
		return diagnostics.Domainf("tick", "player", "dt %v must be non-negative", dt)
	}
	if p.State != Running {
		return nil
	}
	// Each entry restarts the clip clock at zero, matching the values'
	// own AnimateTo. At most one pass over the program per tick.
	for n := 0; n < len(p.prog.Clips) && p.State == Running && p.nowS+settle >= p.prog.Clips[p.idx].DurationS; n++ {
		if err := p.advanceClip(); err != nil {
			return err
		}
		p.nowS = 0
	}
	if p.State == Running {
		p.nowS += dt
	}
	return nil
}

// Current returns the active clip and the time into it.
func (p *Player) Current() (Clip, float64) {
	if len(p.prog.Clips) == 0 {
		return Clip{}, 0
	}
	return p.prog.Clips[p.idx], p.nowS
}

// Duration is the loaded program's length.
func (p *Player) Duration() float64 { return p.total }

func longest(clips []Clip) float64 {
	m := 0.0
	for _, c := range clips {
		m = math.Max(m, c.DurationS)
	}
	return m
}

func (p *Player) reset() {
	p.State = Idle
	p.nowS = 0
	p.idx = 0
}

func (p *Player) nextIndex() int {
	ni := p.idx + 1
	if ni >= len(p.prog.Clips) {
		if p.prog.Loop {
			return 0
		}
		return -1
	}
	return ni
}

func (p *Player) advanceClip() error {
	next := p.nextIndex()
	if next == -1 {
		p.State = Done
		p.log.Debug().Msg("program done")
		if p.hooks.OnDone != nil {
			p.hooks.OnDone()
		}
		return nil
	}
	return p.enter(next)
}

func (p *Player) enter(i int) error {
	p.idx = i
	clip := p.prog.Clips[i]
	for _, m := range p.plan[i] {
		if err := m.v.AnimateTo(m.to, clip.DurationS, m.ease); err != nil {
			return err
		}
	}
	p.log.Debug().Str("clip", clip.Name).Int("index", i).Msg("clip start")
	if p.hooks.OnClipStart != nil {
		if err := p.hooks.OnClipStart(clip); err != nil {
			return err
		}
	}
	return nil
}
