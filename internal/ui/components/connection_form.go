package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/verdande/dbgrip/internal/ui/theme"
)

// Field indices in the connection form, in focus order.
const (
	FieldUsername = iota
	FieldPassword
	FieldHostname
	FieldPort
	fieldCount
)

var fieldLabels = [fieldCount]string{"Username", "Password", "Hostname", "Port"}

// ConnectionForm collects the credentials for a connect attempt. Focus
// cycles over the fields; the port field is last, and Enter there submits.
type ConnectionForm struct {
	Theme  theme.Theme
	inputs [fieldCount]textinput.Model
	active int
}

// NewConnectionForm builds a form prefilled with defaults (environment or
// keyring values); the operator can overtype any of them.
func NewConnectionForm(th theme.Theme, user, password, host, port string) *ConnectionForm {
	f := &ConnectionForm{Theme: th}

	prefill := [fieldCount]string{user, password, host, port}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 128
		in.SetValue(prefill[i])
		f.inputs[i] = in
	}
	f.inputs[FieldPassword].EchoMode = textinput.EchoPassword
	f.inputs[FieldPassword].EchoCharacter = '*'

	f.inputs[f.active].Focus()
	return f
}

// CycleFocus moves the focused field by delta, wrapping around.
func (f *ConnectionForm) CycleFocus(delta int) {
	f.inputs[f.active].Blur()
	f.active = (f.active + delta + fieldCount) % fieldCount
	f.inputs[f.active].Focus()
}

// ActiveIsLast reports whether the port field has focus, meaning Enter
// submits the form.
func (f *ConnectionForm) ActiveIsLast() bool {
	return f.active == fieldCount-1
}

// ActiveField returns the index of the focused field.
func (f *ConnectionForm) ActiveField() int {
	return f.active
}

// Update forwards a key event to the focused field.
func (f *ConnectionForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.active], cmd = f.inputs[f.active].Update(msg)
	return cmd
}

// Values returns the current field buffers.
func (f *ConnectionForm) Values() (user, password, host, port string) {
	return f.inputs[FieldUsername].Value(),
		f.inputs[FieldPassword].Value(),
		f.inputs[FieldHostname].Value(),
		f.inputs[FieldPort].Value()
}

// SetPassword overwrites the password buffer, used for keyring prefill
// after the username has been entered.
func (f *ConnectionForm) SetPassword(password string) {
	f.inputs[FieldPassword].SetValue(password)
}

// View renders the labelled fields, marking the focused one.
func (f *ConnectionForm) View() string {
	label := lipgloss.NewStyle().Foreground(f.Theme.Muted).Width(10)
	focused := lipgloss.NewStyle().Foreground(f.Theme.BorderFocused).Width(10).Bold(true)

	var b strings.Builder
	for i := range f.inputs {
		style := label
		marker := "  "
		if i == f.active {
			style = focused
			marker = "> "
		}
		b.WriteString(marker)
		b.WriteString(style.Render(fieldLabels[i]))
		b.WriteString(f.inputs[i].View())
		if i < fieldCount-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
