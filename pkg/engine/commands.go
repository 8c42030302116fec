package engine

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/escape-room/pkg/state"
)

var (
	// ErrUnknownCommand is returned for an unrecognized leading token.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidPace is returned when /pace gets anything but fast or standard.
	ErrInvalidPace = errors.New("invalid pace")
	// ErrSceneOutOfRange marks a room index past the end of the sequence.
	// The engine recovers by showing the escape scene.
	ErrSceneOutOfRange = errors.New("scene index out of range")
)

const (
	msgInvalidPace    = `Invalid pace. Use "/pace fast" or "/pace standard".`
	msgUnknownCommand = "Unknown command. Try /status."
)

// HandleCommand runs a slash-command typed by the player and reports the
// result through the renderer. The returned error is informational: the
// player has already been told, and session state is untouched on error.
func (e *Engine) HandleCommand(raw string) error {
	cmd := state.ParseCommand(raw)

	msg, err := e.runCommand(cmd)
	if err != nil {
		e.logger.Info("Command rejected", "command", cmd.Name, "error", err)
	}
	e.renderer.ReportMessage(msg)
	return err
}

func (e *Engine) runCommand(cmd state.Command) (string, error) {
	switch cmd.Type {
	case state.CmdPace:
		pace, ok := state.ParsePace(cmd.Arg(0))
		if !ok {
			return msgInvalidPace, fmt.Errorf("%w: %q", ErrInvalidPace, cmd.Arg(0))
		}
		e.setPace(pace)
		return fmt.Sprintf("Pace set to %s. (Feature not fully implemented)", pace), nil

	case state.CmdStatus:
		st := e.Status()
		return fmt.Sprintf("Rooms Cleared: %d / %d", st.RoomsCleared, st.RoomsToEscape), nil

	default:
		return msgUnknownCommand, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}
}

func (e *Engine) setPace(p state.Pace) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pace = p
	if e.gs != nil {
		e.gs.Pace = p
	}
	e.logger.Debug("Pace changed", "pace", p)
}
