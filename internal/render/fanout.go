package render

import (
	"github.com/jwebster45206/escape-room/pkg/engine"
	"github.com/jwebster45206/escape-room/pkg/scene"
)

// Fanout forwards every call to each renderer in order. Nil entries are
// skipped.
type Fanout []engine.Renderer

var _ engine.Renderer = Fanout(nil)

func (f Fanout) RenderScene(s scene.Scene) {
	for _, r := range f {
		if r != nil {
			r.RenderScene(s.Clone())
		}
	}
}

func (f Fanout) ReportMessage(text string) {
	for _, r := range f {
		if r != nil {
			r.ReportMessage(text)
		}
	}
}
