package render

import (
	"sync"

	"github.com/jwebster45206/escape-room/pkg/engine"
	"github.com/jwebster45206/escape-room/pkg/scene"
)

// Recorder keeps every scene and message it is given.
type Recorder struct {
	mu       sync.Mutex
	scenes   []scene.Scene
	messages []string
}

var _ engine.Renderer = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RenderScene(s scene.Scene) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenes = append(r.scenes, s.Clone())
}

func (r *Recorder) ReportMessage(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, text)
}

// Scenes returns a copy of every rendered scene, oldest first.
func (r *Recorder) Scenes() []scene.Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]scene.Scene, len(r.scenes))
	for i, s := range r.scenes {
		out[i] = s.Clone()
	}
	return out
}

// Messages returns a copy of every reported message, oldest first.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// LastScene returns the most recent scene, if any.
func (r *Recorder) LastScene() (scene.Scene, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.scenes) == 0 {
		return scene.Scene{}, false
	}
	return r.scenes[len(r.scenes)-1].Clone(), true
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenes = nil
	r.messages = nil
}
