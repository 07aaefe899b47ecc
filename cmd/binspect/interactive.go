package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nasselk/binarypack"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	consumedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type decodedField struct {
	offset int
	bit    int
	token  string
	value  string
}

type inspectModel struct {
	err      error
	reader   *binarypack.Reader
	data     []byte
	filename string
	fields   []decodedField
	input    textinput.Model
	hex      viewport.Model
	ready    bool
}

func newInspectModel(filename string, data []byte) *inspectModel {
	ti := textinput.New()
	ti.Placeholder = "u16, bits:3, str:p16, varint, ..."
	ti.Prompt = "field> "
	ti.Width = 48
	ti.Focus()

	return &inspectModel{
		filename: filename,
		data:     data,
		reader:   binarypack.NewReader(data),
		input:    ti,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Leave room for the title, field log, prompt and help lines.
		height := msg.Height - len(m.fields) - 8
		if height < 4 {
			height = 4
		}
		if !m.ready {
			m.hex = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.hex.Width = msg.Width
			m.hex.Height = height
		}
		m.hex.SetContent(m.renderHex())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+r":
			m.reader = binarypack.NewReader(m.data)
			m.fields = nil
			m.err = nil
			if m.ready {
				m.hex.SetContent(m.renderHex())
			}

		case "enter":
			m.decode(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
			if m.ready {
				m.hex.SetContent(m.renderHex())
			}

		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.hex, cmd = m.hex.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inspectModel) decode(token string) {
	if token == "" {
		return
	}
	offset, bit := m.reader.Offset(), 8-m.reader.RemainingBits()%8
	if bit == 8 {
		bit = 0
	}
	value, err := decodeField(m.reader, token)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.fields = append(m.fields, decodedField{
		offset: offset,
		bit:    bit,
		token:  token,
		value:  value,
	})
}

// renderHex renders the buffer with consumed bytes dimmed and the cursor byte
// highlighted.
func (m *inspectModel) renderHex() string {
	var b strings.Builder
	cursor := m.reader.Offset()
	for base := 0; base < len(m.data); base += 16 {
		fmt.Fprintf(&b, "%08x  ", base)
		for i := 0; i < 16 && base+i < len(m.data); i++ {
			cell := fmt.Sprintf("%02x", m.data[base+i])
			switch {
			case base+i == cursor:
				cell = cursorStyle.Render(cell)
			case base+i < cursor:
				cell = consumedStyle.Render(cell)
			}
			b.WriteString(cell)
			b.WriteByte(' ')
			if i == 7 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("binspect"))
	b.WriteString(" ")
	fmt.Fprintf(&b, "%s (%d bytes, %d bits unread)", m.filename, len(m.data), m.reader.RemainingBits())
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(m.hex.View())
		b.WriteString("\n")
	}

	for _, f := range m.fields {
		fmt.Fprintf(&b, "  %6d.%d  %s %s\n",
			f.offset, f.bit, fieldStyle.Render(fmt.Sprintf("%-10s", f.token)), valueStyle.Render(f.value))
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("  %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter decode • ctrl+r restart • pgup/pgdn scroll • esc quit"))

	return b.String()
}

func runInteractive(filename string, data []byte) error {
	p := tea.NewProgram(newInspectModel(filename, data), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
