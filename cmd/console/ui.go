package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/escape-room/pkg/engine"
	"github.com/jwebster45206/escape-room/pkg/textfilter"
	"github.com/muesli/reflow/wordwrap"
)

const (
	Title           = "ESCAPE ROOM"
	PlaceHolderText = "Type a command, e.g. /status"
)

type focusArea int

const (
	focusChoices focusArea = iota
	focusInput
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	engine        *engine.Engine
	screen        *screen
	filter        *textfilter.Filter
	sceneViewport viewport.Model
	metaViewport  viewport.Model
	input         textinput.Model
	focus         focusArea
	selected      int
	seenVersion   int
	notice        string
	noticeIsError bool
	ready         bool
	width         int
	height        int

	// Quit confirmation state
	showQuitModal bool
}

type clipboardMsg struct {
	err error
}

var (
	scenePanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narrativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	imageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	selectedChoiceStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

// NewConsoleUI builds the model. The engine should already be initialized
// so the screen holds the start scene.
func NewConsoleUI(eng *engine.Engine, scr *screen) ConsoleUI {
	ti := textinput.New()
	ti.Placeholder = PlaceHolderText
	ti.Prompt = promptStyle.Render(":: ")
	ti.CharLimit = 200

	sceneVp := viewport.New(50, 20)
	metaVp := viewport.New(20, 20)

	m := ConsoleUI{
		engine:        eng,
		screen:        scr,
		filter:        textfilter.New(),
		sceneViewport: sceneVp,
		metaViewport:  metaVp,
		input:         ti,
		focus:         focusChoices,
	}
	m.sync()
	return m
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.writeSceneContent()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.setNotice("Copy failed: "+msg.err.Error(), true)
		} else {
			m.setNotice("Scene text copied to clipboard.", false)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEsc:
			if m.focus == focusInput {
				m.focusChoices()
				return m, nil
			}
			m.showQuitModal = true
			return m, nil
		case tea.KeyTab:
			if m.focus == focusInput {
				m.focusChoices()
				return m, nil
			}
			cmd := m.focusInput("")
			return m, cmd
		case tea.KeyCtrlY:
			return m, m.copyScene()
		}

		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateChoices(msg)
	}

	var cmd tea.Cmd
	m.sceneViewport, cmd = m.sceneViewport.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateChoices(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sc, _ := m.screen.Current()

	switch msg.Type {
	case tea.KeyUp:
		m.moveSelection(-1, len(sc.Choices))
	case tea.KeyDown:
		m.moveSelection(1, len(sc.Choices))
	case tea.KeyEnter:
		m.choose(m.selected)
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.sceneViewport, cmd = m.sceneViewport.Update(msg)
		return m, cmd
	case tea.KeyRunes:
		switch key := msg.String(); key {
		case "/":
			cmd := m.focusInput("/")
			return m, cmd
		case "k":
			m.moveSelection(-1, len(sc.Choices))
		case "j":
			m.moveSelection(1, len(sc.Choices))
		default:
			if n, err := strconv.Atoi(key); err == nil {
				m.choose(n - 1)
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		raw := m.input.Value()
		m.input.Reset()
		m.focusChoices()
		if strings.TrimSpace(raw) == "" {
			return m, nil
		}

		err := m.engine.HandleCommand(raw)
		m.sync()
		if err != nil {
			m.noticeIsError = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ConsoleUI) moveSelection(delta, count int) {
	next := m.selected + delta
	if next < 0 || next >= count {
		return
	}
	m.selected = next
}

// choose applies the i-th choice of the displayed scene.
func (m *ConsoleUI) choose(i int) {
	sc, _ := m.screen.Current()
	if i < 0 || i >= len(sc.Choices) {
		return
	}
	m.engine.ApplyChoice(sc.Choices[i].Outcome)
	m.sync()
}

func (m *ConsoleUI) focusInput(initial string) tea.Cmd {
	m.focus = focusInput
	m.input.SetValue(initial)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *ConsoleUI) focusChoices() {
	m.focus = focusChoices
	m.input.Blur()
}

// sync pulls whatever the engine rendered since the last event.
func (m *ConsoleUI) sync() {
	_, version := m.screen.Current()
	if version != m.seenVersion {
		m.seenVersion = version
		m.selected = 0
		m.notice = ""
		m.noticeIsError = false
		m.layout()
		m.writeSceneContent()
		m.sceneViewport.GotoTop()
	}

	if msgs := m.screen.TakeMessages(); len(msgs) > 0 {
		m.setNotice(msgs[len(msgs)-1], false)
	}
	m.metaViewport.SetContent(m.writeMetadata())
}

func (m *ConsoleUI) setNotice(text string, isError bool) {
	m.notice = text
	m.noticeIsError = isError
}

func (m *ConsoleUI) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	sc, _ := m.screen.Current()

	sceneWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - sceneWidth - 6

	// title, choices, notice, separator, input and padding
	reserved := len(sc.Choices) + 10

	m.sceneViewport.Width = sceneWidth - 2
	m.sceneViewport.Height = max(3, m.height-reserved)
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.input.Width = sceneWidth - 8
}

// displayText applies the session's content rating to text.
func (m ConsoleUI) displayText(text string) string {
	if textfilter.Applies(m.engine.Status().Tone) {
		return m.filter.Apply(text)
	}
	return text
}

func (m *ConsoleUI) writeSceneContent() {
	sc, _ := m.screen.Current()
	width := max(10, m.sceneViewport.Width-2)

	var content strings.Builder
	if sc.ImageRef != "" {
		content.WriteString(imageStyle.Render("[ "+sc.ImageRef+" ]") + "\n\n")
	}
	content.WriteString(narrativeStyle.Render(wordwrap.String(m.displayText(sc.Text), width)))
	m.sceneViewport.SetContent(content.String())
}

func (m ConsoleUI) writeMetadata() string {
	st := m.engine.Status()

	var content strings.Builder
	content.WriteString(titleStyle.Render("SESSION") + "\n\n")

	content.WriteString("Session ID:\n")
	content.WriteString(st.SessionID.String()[:8] + "...\n\n")

	content.WriteString("Rooms Cleared:\n")
	content.WriteString(fmt.Sprintf("%d / %d\n", st.RoomsCleared, st.RoomsToEscape))
	content.WriteString(progressBar(st.RoomsCleared, st.RoomsToEscape) + "\n\n")

	content.WriteString("Pace:\n")
	content.WriteString(string(st.Pace) + "\n\n")

	content.WriteString("Tone:\n")
	content.WriteString(string(st.Tone) + "\n\n")

	content.WriteString("Keys:\n")
	content.WriteString("• ↑/↓, 1-9: Choose\n")
	content.WriteString("• Enter: Select\n")
	content.WriteString("• /, Tab: Command\n")
	content.WriteString("• Ctrl+Y: Copy text\n")
	content.WriteString("• Ctrl+C: Quit\n\n")

	content.WriteString("Commands:\n")
	content.WriteString("• /status\n")
	content.WriteString("• /pace fast|standard\n")

	return content.String()
}

func progressBar(done, total int) string {
	if total <= 0 {
		return ""
	}
	var bar strings.Builder
	for i := 0; i < total; i++ {
		if i < done {
			bar.WriteString("█")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

func (m ConsoleUI) renderChoices() string {
	sc, _ := m.screen.Current()

	lines := make([]string, 0, len(sc.Choices))
	for i, ch := range sc.Choices {
		label := fmt.Sprintf("%d. %s", i+1, m.displayText(ch.Label))
		if i == m.selected && m.focus == focusChoices {
			lines = append(lines, selectedChoiceStyle.Render("▶ "+label))
		} else {
			lines = append(lines, choiceStyle.Render("  "+label))
		}
	}
	return strings.Join(lines, "\n")
}

func (m ConsoleUI) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeIsError {
		return errorStyle.Render(m.notice)
	}
	return noticeStyle.Render(m.notice)
}

func (m ConsoleUI) copyScene() tea.Cmd {
	sc, _ := m.screen.Current()
	text := sc.Text
	return func() tea.Msg {
		return clipboardMsg{err: clipboard.WriteAll(text)}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyEsc:
			m.showQuitModal = false
			return m, nil
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				return m, nil
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("The room will forget you were ever here.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep playing, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	sceneWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - sceneWidth - 6

	scenePanel := scenePanelStyle.Width(sceneWidth).Height(m.height - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(Title),
			"",
			m.sceneViewport.View(),
			"",
			m.renderChoices(),
			"",
			m.renderNotice(),
			separatorStyle.Render(strings.Repeat("─", max(0, sceneWidth-4))),
			m.input.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, scenePanel, metaPanel)
}
