package main

import (
	"log/slog"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/escape-room/pkg/engine"
	"github.com/jwebster45206/escape-room/pkg/scene"
	"github.com/jwebster45206/escape-room/pkg/shuffle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUI(t *testing.T) (ConsoleUI, *engine.Engine, *screen) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	scr := newScreen()
	eng := engine.New(scene.Default(), scr, logger).WithSource(shuffle.NewSource(3))
	eng.Init()

	m := NewConsoleUI(eng, scr)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, eng, scr
}

func update(t *testing.T, m ConsoleUI, msg tea.Msg) ConsoleUI {
	t.Helper()
	next, _ := m.Update(msg)
	ui, ok := next.(ConsoleUI)
	require.True(t, ok)
	return ui
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeCommand(t *testing.T, m ConsoleUI, cmd string) ConsoleUI {
	t.Helper()
	m = update(t, m, keys("/"))
	require.Equal(t, focusInput, m.focus)
	m = update(t, m, keys(cmd[1:]))
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestConsoleUI_StartsOnStartScene(t *testing.T) {
	m, _, scr := newTestUI(t)

	sc, _ := scr.Current()
	assert.Equal(t, "wake_up", sc.ID)
	assert.True(t, m.ready)
	assert.Equal(t, focusChoices, m.focus)
	assert.Contains(t, m.View(), Title)
	assert.Contains(t, m.View(), "Crawl toward the chair.")
}

func TestConsoleUI_NumberKeyPicksChoice(t *testing.T) {
	m, eng, scr := newTestUI(t)

	m = update(t, m, keys("2"))

	assert.Equal(t, 1, eng.Status().RoomsCleared)
	sc, _ := scr.Current()
	assert.Equal(t, eng.RoomSequence()[1].ID, sc.ID)
	assert.Equal(t, 0, m.selected)
}

func TestConsoleUI_OutOfRangeNumberIsIgnored(t *testing.T) {
	m, eng, _ := newTestUI(t)

	m = update(t, m, keys("9"))
	m = update(t, m, keys("0"))
	_ = update(t, m, keys("x"))

	assert.Equal(t, 0, eng.Status().RoomsCleared)
}

func TestConsoleUI_ArrowsAndEnter(t *testing.T) {
	m, eng, _ := newTestUI(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.selected)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.selected, "selection stops at the last choice")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.selected)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, eng.Status().RoomsCleared)
	assert.Equal(t, 0, m.selected, "a new scene resets the selection")
}

func TestConsoleUI_PlayThroughAndRestart(t *testing.T) {
	m, eng, scr := newTestUI(t)
	total := eng.Status().RoomsToEscape

	for i := 0; i < total; i++ {
		m = update(t, m, keys("1"))
	}
	sc, _ := scr.Current()
	require.Equal(t, "escape", sc.ID)
	assert.Equal(t, engine.PhaseEscaped, eng.Phase())

	m = update(t, m, keys("1"))

	sc, _ = scr.Current()
	assert.Equal(t, "wake_up", sc.ID)
	assert.Equal(t, 0, eng.Status().RoomsCleared)
}

func TestConsoleUI_StatusCommand(t *testing.T) {
	m, _, _ := newTestUI(t)
	m = update(t, m, keys("1"))
	m = update(t, m, keys("1"))

	m = typeCommand(t, m, "/status")

	assert.Equal(t, "Rooms Cleared: 2 / 6", m.notice)
	assert.False(t, m.noticeIsError)
	assert.Equal(t, focusChoices, m.focus)
	assert.Empty(t, m.input.Value())
}

func TestConsoleUI_PaceCommands(t *testing.T) {
	m, eng, _ := newTestUI(t)

	m = typeCommand(t, m, "/pace fast")
	assert.Equal(t, "Pace set to fast. (Feature not fully implemented)", m.notice)
	assert.EqualValues(t, "fast", eng.Status().Pace)

	m = typeCommand(t, m, "/pace slow")
	assert.Contains(t, m.notice, "Invalid pace")
	assert.True(t, m.noticeIsError)
	assert.EqualValues(t, "fast", eng.Status().Pace)
}

func TestConsoleUI_UnknownCommand(t *testing.T) {
	m, _, _ := newTestUI(t)

	m = typeCommand(t, m, "/dance")

	assert.Equal(t, "Unknown command. Try /status.", m.notice)
	assert.True(t, m.noticeIsError)
}

func TestConsoleUI_NoticeClearsOnNewScene(t *testing.T) {
	m, _, _ := newTestUI(t)
	m = typeCommand(t, m, "/status")
	require.NotEmpty(t, m.notice)

	m = update(t, m, keys("1"))
	assert.Empty(t, m.notice)
}

func TestConsoleUI_EmptyCommandIsIgnored(t *testing.T) {
	m, _, scr := newTestUI(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusInput, m.focus)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, focusChoices, m.focus)
	assert.Empty(t, m.notice)
	assert.Empty(t, scr.TakeMessages())
}

func TestConsoleUI_EscLeavesInputThenOpensQuitModal(t *testing.T) {
	m, _, _ := newTestUI(t)

	m = update(t, m, keys("/"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusChoices, m.focus)
	assert.False(t, m.showQuitModal)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.showQuitModal)
	assert.Contains(t, m.View(), "Quit Game?")

	m = update(t, m, keys("n"))
	assert.False(t, m.showQuitModal)
}

func TestConsoleUI_QuitModalQuits(t *testing.T) {
	m, _, _ := newTestUI(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.True(t, m.showQuitModal)

	_, cmd := m.Update(keys("y"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestConsoleUI_ClipboardResult(t *testing.T) {
	m, _, _ := newTestUI(t)

	m = update(t, m, clipboardMsg{})
	assert.Equal(t, "Scene text copied to clipboard.", m.notice)

	m = update(t, m, clipboardMsg{err: assert.AnError})
	assert.Contains(t, m.notice, "Copy failed")
	assert.True(t, m.noticeIsError)
}

func TestConsoleUI_ToneFilterOnDisplay(t *testing.T) {
	m, _, _ := newTestUI(t)
	assert.Equal(t, "What the heck?", m.displayText("What the hell?"))
}

func TestScreen(t *testing.T) {
	s := newScreen()
	_, v0 := s.Current()

	s.RenderScene(scene.Scene{ID: "a"})
	s.RenderScene(scene.Scene{ID: "a"})
	sc, v2 := s.Current()
	assert.Equal(t, "a", sc.ID)
	assert.Equal(t, v0+2, v2, "re-rendering the same scene still bumps the version")

	s.ReportMessage("one")
	s.ReportMessage("two")
	assert.Equal(t, []string{"one", "two"}, s.TakeMessages())
	assert.Empty(t, s.TakeMessages())
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "", progressBar(0, 0))
	assert.Contains(t, progressBar(2, 4), "██░░")
}
