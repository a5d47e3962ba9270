// Package sink holds frame consumers that need no network: a recorder for
// tests, a one-line summary printer and a JSON lines exporter.
package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/coreman2200/funtimes-arcanim/internal/scene"
)

// Recorder keeps the frames written to it, up to Keep (0 keeps all).
type Recorder struct {
	mu     sync.Mutex
	Keep   int
	Count  int
	frames []scene.Frame
}

func (r *Recorder) Write(f scene.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Count++
	r.frames = append(r.frames, f)
	if r.Keep > 0 && len(r.frames) > r.Keep {
		r.frames = r.frames[len(r.frames)-r.Keep:]
	}
	return nil
}

// Frames returns a copy of the retained frames.
func (r *Recorder) Frames() []scene.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]scene.Frame(nil), r.frames...)
}

// Last returns the most recent frame.
func (r *Recorder) Last() (scene.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return scene.Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

// Summary prints a compact line per Every frames (0 or 1 prints all),
// useful for headless runs.
type Summary struct {
	Out   io.Writer
	Every int
}

func (s *Summary) Write(f scene.Frame) error {
	if s.Every > 1 && f.Index%uint64(s.Every) != 0 {
		return nil
	}
	shapes := 0
	for _, o := range f.Objects {
		shapes += len(o.Shapes)
	}
	_, err := fmt.Fprintf(s.Out, "[frame %04d] t=%.3fs objects=%d shapes=%d values=%v\n",
		f.Index, f.T, len(f.Objects), shapes, f.Values)
	return err
}

// JSONLines writes one JSON document per frame.
type JSONLines struct {
	enc *json.Encoder
}

func NewJSONLines(w io.Writer) *JSONLines { return &JSONLines{enc: json.NewEncoder(w)} }

func (j *JSONLines) Write(f scene.Frame) error { return j.enc.Encode(f) }
