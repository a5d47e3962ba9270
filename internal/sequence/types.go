package sequence

// Animation moves one bound value to To over the length of its clip.
type Animation struct {
	Value string  `json:"value" yaml:"value" mapstructure:"value"`
	To    float64 `json:"to" yaml:"to" mapstructure:"to"`
	Ease  string  `json:"ease,omitempty" yaml:"ease,omitempty" mapstructure:"ease"` // "linear","smooth","cubic"
}

// Clip is one segment of a timeline. A clip with no animations is a wait.
type Clip struct {
	Name       string      `json:"name" yaml:"name" mapstructure:"name"`
	DurationS  float64     `json:"durationS" yaml:"duration_s" mapstructure:"duration_s"`
	Animations []Animation `json:"animations,omitempty" yaml:"animations,omitempty" mapstructure:"animations"`
}

// Program is a full sequence of clips.
type Program struct {
	Version string `json:"version" yaml:"version" mapstructure:"version"` // e.g., "seq.v1"
	Loop    bool   `json:"loop,omitempty" yaml:"loop,omitempty" mapstructure:"loop"`
	Clips   []Clip `json:"clips" yaml:"clips" mapstructure:"clips"`
}

// Duration is the summed clip length.
func (p Program) Duration() float64 {
	total := 0.0
	for _, c := range p.Clips {
		total += c.DurationS
	}
	return total
}

// PlayerState enumerates sequencer states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
	Done    PlayerState = "done"
)

// Hooks are callbacks into the scene. Errors from OnClipStart fail the tick
// that crossed into the clip.
type Hooks struct {
	OnClipStart func(c Clip) error
	OnDone      func()
}
