package scene

// Frame is the stage as it stood after one tick.
type Frame struct {
	Scene   string             `json:"scene"`
	Index   uint64             `json:"frame"`
	T       float64            `json:"t"`
	Values  map[string]float64 `json:"values,omitempty"`
	Objects []Object           `json:"objects"`
}

// Sink consumes frames: a websocket hub, a JSON dump, a test recorder.
type Sink interface {
	Write(f Frame) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(f Frame) error

func (fn SinkFunc) Write(f Frame) error { return fn(f) }
