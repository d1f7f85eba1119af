// Package tui provides a Bubble Tea terminal user interface for wav2mp3.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/wav2mp3/internal/audio"
	"github.com/handiism/wav2mp3/internal/config"
	"github.com/handiism/wav2mp3/internal/convert"
	"github.com/handiism/wav2mp3/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateConverting
	StateComplete
	StateError
)

// Form fields, in focus order.
const (
	fieldInput = iota
	fieldOutput
	fieldBitrate
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldInput:   "WAV file",
	fieldOutput:  "MP3 file",
	fieldBitrate: "Bitrate",
}

// Converter runs one conversion.
type Converter interface {
	Convert(ctx context.Context, conv *model.Conversion) error
}

// ConverterFactory builds a Converter reporting to onEvent.
type ConverterFactory func(settings *config.Settings, onEvent func(convert.Event)) Converter

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state   State
	inputs  []textinput.Model
	focus   int
	spinner spinner.Model

	settings     *config.Settings
	settingsPath string
	newConverter ConverterFactory

	conversion *model.Conversion
	logs       []convert.Event
	err        error

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// NewModel creates a new TUI model. Settings are saved to settingsPath
// after every successful conversion; an empty path disables saving.
func NewModel(settings *config.Settings, settingsPath string, newConverter ConverterFactory) Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 500
		ti.Width = 60
		ti.Prompt = "› "
		inputs[i] = ti
	}
	inputs[fieldInput].Placeholder = "/path/to/recording.wav"
	inputs[fieldOutput].Placeholder = "same as input, with .mp3 extension"
	inputs[fieldBitrate].Placeholder = model.DefaultBitrate
	inputs[fieldBitrate].CharLimit = 16
	inputs[fieldBitrate].SetValue(settings.Bitrate)
	inputs[fieldInput].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:        StateInput,
		inputs:       inputs,
		spinner:      sp,
		settings:     settings,
		settingsPath: settingsPath,
		newConverter: newConverter,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// ConvertDoneMsg is sent when a conversion finishes.
type ConvertDoneMsg struct {
	Conversion *model.Conversion
	Events     []convert.Event
	Err        error
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateConverting {
				m.cancel()
			}

		case "tab", "down":
			if m.state == StateInput {
				return m, m.setFocus((m.focus + 1) % fieldCount)
			}

		case "shift+tab", "up":
			if m.state == StateInput {
				return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.inputs[fieldInput].Value()) != "" {
				m.conversion = model.NewConversion(
					strings.TrimSpace(m.inputs[fieldInput].Value()),
					strings.TrimSpace(m.inputs[fieldOutput].Value()),
					strings.TrimSpace(m.inputs[fieldBitrate].Value()),
				)
				m.logs = nil
				m.state = StateConverting
				return m, tea.Batch(m.startConversion(m.conversion), m.spinner.Tick)
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new conversion, keeping the bitrate
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.conversion = nil
				m.cancel()
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.inputs[fieldInput].SetValue("")
				m.inputs[fieldOutput].SetValue("")
				m.refreshOutputPlaceholder()
				return m, m.setFocus(fieldInput)
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ConvertDoneMsg:
		m.logs = msg.Events
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
			m.rememberBitrate(msg.Conversion.Bitrate)
		}
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		cmds = append(cmds, cmd)
		m.refreshOutputPlaceholder()
	}

	return m, tea.Batch(cmds...)
}

// setFocus moves keyboard focus to the given field.
func (m *Model) setFocus(field int) tea.Cmd {
	m.focus = field
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == field {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

// refreshOutputPlaceholder shows the derived output path while the
// output field is empty.
func (m *Model) refreshOutputPlaceholder() {
	in := strings.TrimSpace(m.inputs[fieldInput].Value())
	if in == "" {
		m.inputs[fieldOutput].Placeholder = "same as input, with .mp3 extension"
		return
	}
	m.inputs[fieldOutput].Placeholder = model.DefaultOutputPath(in)
}

// rememberBitrate stores the last used bitrate in the settings file.
func (m *Model) rememberBitrate(bitrate string) {
	m.settings.Bitrate = bitrate
	if m.settingsPath == "" {
		return
	}
	if err := m.settings.Save(m.settingsPath); err != nil {
		m.logs = append(m.logs, convert.Event{
			Message: fmt.Sprintf("Could not save settings: %v", err),
			Level:   convert.LevelWarning,
		})
	}
}

// startConversion runs the conversion in the background.
func (m Model) startConversion(conv *model.Conversion) tea.Cmd {
	ctx := m.ctx
	settings := *m.settings
	newConverter := m.newConverter

	return func() tea.Msg {
		var events []convert.Event
		c := newConverter(&settings, func(event convert.Event) {
			events = append(events, event)
		})

		err := c.Convert(ctx, conv)
		return ConvertDoneMsg{
			Conversion: conv,
			Events:     events,
			Err:        err,
		}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 wav2mp3"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Convert a WAV file to MP3"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateConverting:
		b.WriteString(m.viewConverting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	for i, input := range m.inputs {
		label := fieldLabels[i]
		if i == m.focus {
			b.WriteString(subtitleStyle.Render(label))
		} else {
			b.WriteString(dimStyle.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("Encoder: %s (%s)", m.settings.FFmpegPath, m.settings.Codec)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewConverting() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Converting %s...", m.conversion.InputPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Conversion Complete!\n\n"+
			"From: %s\n"+
			"To: %s\n"+
			"Bitrate: %s",
		m.conversion.InputPath,
		m.conversion.OutputPath,
		m.conversion.Bitrate,
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n")

	return b.String()
}

// renderLogs shows the events worth keeping on screen after a run.
func (m Model) renderLogs() string {
	var b strings.Builder

	for _, event := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch event.Level {
		case convert.LevelWarning:
			style = warningStyle
			prefix = "!"
		case convert.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case convert.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			continue
		}
		b.WriteString(style.Render(prefix + " " + event.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: convert • tab: next field • esc: quit"
	case StateConverting:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new conversion • q: quit"
	}
	return ""
}

// NewConverter builds the converter used by Run: the go-audio decoder,
// the ffmpeg encoder and an ffprobe read-back of the result.
func NewConverter(settings *config.Settings, onEvent func(convert.Event)) Converter {
	c := convert.New(settings, onEvent)
	c.SetProber(audio.NewProber())
	return c
}

// Run starts the TUI application.
func Run() error {
	path := config.DefaultPath()
	settings, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	p := tea.NewProgram(NewModel(settings, path, NewConverter), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
