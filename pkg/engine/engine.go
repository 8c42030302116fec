package engine

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/escape-room/pkg/scene"
	"github.com/jwebster45206/escape-room/pkg/shuffle"
	"github.com/jwebster45206/escape-room/pkg/state"
)

// Renderer displays scenes and messages. It is implemented by the host
// (terminal UI, spectator feed, tests). Renderers may read Status but must
// not call Init, ApplyChoice or HandleCommand from inside a render call.
type Renderer interface {
	// RenderScene replaces the displayed scene. Each choice should be wired
	// to Engine.ApplyChoice with its outcome.
	RenderScene(s scene.Scene)
	// ReportMessage shows a one-shot informational or error message.
	ReportMessage(text string)
}

// Phase is the coarse state of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInRoom
	PhaseEscaped
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInRoom:
		return "in_room"
	case PhaseEscaped:
		return "escaped"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Status is a read-only snapshot of the session.
type Status struct {
	Phase         Phase
	SessionID     uuid.UUID
	RoomsCleared  int
	RoomsToEscape int
	Pace          state.Pace
	Tone          state.Tone
}

// Engine sequences scenes for one escape room session. All state changes
// go through Init, ApplyChoice and HandleCommand; the engine is safe for
// use from multiple goroutines.
type Engine struct {
	mu            sync.Mutex
	catalog       *scene.Catalog
	renderer      Renderer
	src           shuffle.Source
	logger        *slog.Logger
	gs            *state.GameState
	pace          state.Pace // carried across restarts
	roomsToEscape int
}

// New creates an engine over catalog that renders through r.
// Call Init to start the first session.
func New(catalog *scene.Catalog, r Renderer, logger *slog.Logger) *Engine {
	if r == nil {
		r = nopRenderer{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		catalog:       catalog,
		renderer:      r,
		src:           shuffle.NewRandomSource(),
		logger:        logger,
		pace:          state.PaceStandard,
		roomsToEscape: catalog.RoomCount(),
	}
}

// WithSource sets the random source used to order rooms.
// Returns the Engine for method chaining
func (e *Engine) WithSource(src shuffle.Source) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.src = src
	return e
}

// WithLogger replaces the engine's logger. A nil logger is ignored.
// Returns the Engine for method chaining
func (e *Engine) WithLogger(logger *slog.Logger) *Engine {
	if logger == nil {
		return e
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logger = logger
	return e
}

// Init starts a new session: the room counter goes back to zero, the
// catalog rooms are reshuffled, and the start scene is rendered. It is also
// the restart handler.
func (e *Engine) Init() {
	e.mu.Lock()
	rooms := shuffle.Shuffle(e.src, e.catalog.RoomScenes())
	if e.gs == nil {
		e.gs = state.NewGameState(rooms)
	} else {
		e.gs.Reset(rooms)
	}
	e.gs.Pace = e.pace
	start := e.catalog.StartScene()
	e.logger.Info("Session started",
		"session_id", e.gs.ID,
		"rooms_to_escape", e.roomsToEscape,
		"room_order", roomIDs(rooms))
	e.mu.Unlock()

	e.renderer.RenderScene(start)
}

// CurrentScene returns the scene for the current room, or the escape scene
// once every room is cleared. Before Init it returns the start scene.
func (e *Engine) CurrentScene() scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentScene()
}

func (e *Engine) currentScene() scene.Scene {
	if e.gs == nil {
		return e.catalog.StartScene()
	}
	if e.gs.RoomsCleared >= e.roomsToEscape {
		return e.catalog.EscapeScene()
	}
	room, ok := e.gs.Room(e.gs.RoomsCleared)
	if !ok {
		// Fewer rooms than needed to escape: let the player out early.
		e.logger.Warn("Room index beyond sequence, showing escape scene",
			"session_id", e.gs.ID,
			"error", fmt.Errorf("%w: index %d, sequence length %d", ErrSceneOutOfRange, e.gs.RoomsCleared, len(e.gs.RoomSequence)))
		return e.catalog.EscapeScene()
	}
	return room.Clone()
}

// ApplyChoice handles the outcome of a picked choice. Progress advances to
// the next room and renders it; restart begins a new session. Other
// outcomes are accepted and ignored.
func (e *Engine) ApplyChoice(outcome scene.Outcome) {
	switch outcome {
	case scene.OutcomeProgress:
		e.renderer.RenderScene(e.advance())
	case scene.OutcomeRestart:
		e.Init()
	default:
		e.logger.Debug("Ignoring unhandled outcome", "outcome", outcome)
	}
}

func (e *Engine) advance() scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gs == nil {
		// Progress before Init: start implicitly so the counter has a home.
		e.gs = state.NewGameState(shuffle.Shuffle(e.src, e.catalog.RoomScenes()))
		e.gs.Pace = e.pace
	}
	if e.gs.RoomsCleared < e.roomsToEscape {
		e.gs.RoomsCleared++
	}

	next := e.currentScene()
	e.logger.Debug("Room cleared",
		"session_id", e.gs.ID,
		"rooms_cleared", e.gs.RoomsCleared,
		"next_scene", next.ID,
		"phase", e.phase())
	return next
}

// Phase reports where the session is.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase()
}

func (e *Engine) phase() Phase {
	switch {
	case e.gs == nil:
		return PhaseNotStarted
	case e.gs.RoomsCleared >= e.roomsToEscape, e.gs.RoomsCleared >= len(e.gs.RoomSequence):
		return PhaseEscaped
	default:
		return PhaseInRoom
	}
}

// Status returns a snapshot of the session counters.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := Status{
		Phase:         e.phase(),
		RoomsToEscape: e.roomsToEscape,
		Pace:          e.pace,
		Tone:          state.TonePG13,
	}
	if e.gs != nil {
		st.SessionID = e.gs.ID
		st.RoomsCleared = e.gs.RoomsCleared
		st.Tone = e.gs.Tone
	}
	return st
}

// RoomSequence returns a copy of this session's room order.
func (e *Engine) RoomSequence() []scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gs == nil {
		return nil
	}
	out := make([]scene.Scene, len(e.gs.RoomSequence))
	for i, s := range e.gs.RoomSequence {
		out[i] = s.Clone()
	}
	return out
}

func roomIDs(rooms []scene.Scene) []string {
	ids := make([]string, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	return ids
}

type nopRenderer struct{}

func (nopRenderer) RenderScene(scene.Scene) {}
func (nopRenderer) ReportMessage(string)    {}
