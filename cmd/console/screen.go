package main

import (
	"sync"

	"github.com/jwebster45206/escape-room/pkg/engine"
	"github.com/jwebster45206/escape-room/pkg/scene"
)

// screen is the console's side of the render boundary. The engine writes
// into it; the bubbletea model reads from it after every event.
type screen struct {
	mu       sync.Mutex
	current  scene.Scene
	version  int
	messages []string
}

var _ engine.Renderer = (*screen)(nil)

func newScreen() *screen {
	return &screen{}
}

func (s *screen) RenderScene(sc scene.Scene) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sc
	s.version++
}

func (s *screen) ReportMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, text)
}

// Current returns the displayed scene and a counter that changes every
// time a scene is rendered, even if it is the same scene again.
func (s *screen) Current() (scene.Scene, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone(), s.version
}

// TakeMessages returns and clears pending messages.
func (s *screen) TakeMessages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages
	s.messages = nil
	return msgs
}
