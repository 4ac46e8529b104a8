package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haoyun/fundwatch/internal/ui/style"
)

// FieldType represents the type of form field
type FieldType int

const (
	FieldTypeText FieldType = iota
	FieldTypeNumber
	FieldTypeSelect
)

// FormField represents a single form field
type FormField struct {
	Name        string
	Label       string
	Type        FieldType
	Value       string
	Options     []string // For select fields
	Placeholder string
	Required    bool
	Disabled    bool
	Error       string

	// Internal state
	textInput   textinput.Model
	selectedIdx int // For select fields
}

// Form represents a form component with multiple fields
type Form struct {
	fields     []FormField
	focusIndex int
	width      int
	height     int

	labelStyle    lipgloss.Style
	inputStyle    lipgloss.Style
	focusedStyle  lipgloss.Style
	disabledStyle lipgloss.Style
	errorStyle    lipgloss.Style
}

// NewForm creates a new form component
func NewForm() *Form {
	palette := style.DefaultPalette()

	return &Form{
		fields:     make([]FormField, 0),
		focusIndex: 0,

		labelStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true).
			MarginRight(1),

		inputStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Background(palette.BackgroundAlt).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		focusedStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Background(palette.BackgroundAlt).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary),

		disabledStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		errorStyle: lipgloss.NewStyle().
			Foreground(palette.Error).
			MarginTop(1),
	}
}

// AddField adds a field to the form
func (f *Form) AddField(name string, fieldType FieldType, label string, required bool, placeholder string) *Form {
	ti := textinput.New()
	ti.Width = 40
	ti.Placeholder = placeholder

	if fieldType == FieldTypeNumber && placeholder == "" {
		ti.Placeholder = "0"
	}

	field := FormField{
		Name:        name,
		Label:       label,
		Type:        fieldType,
		Value:       "",
		Options:     make([]string, 0),
		Placeholder: placeholder,
		Required:    required,
		textInput:   ti,
	}

	f.fields = append(f.fields, field)

	// Focus first field
	if len(f.fields) == 1 {
		f.fields[0].textInput.Focus()
	}

	return f
}

// SetFieldValue sets the value of a field
func (f *Form) SetFieldValue(name, value string) *Form {
	for i := range f.fields {
		if f.fields[i].Name == name {
			f.fields[i].Value = value
			f.fields[i].textInput.SetValue(value)
			if f.fields[i].Type == FieldTypeSelect {
				for idx, opt := range f.fields[i].Options {
					if opt == value {
						f.fields[i].selectedIdx = idx
						break
					}
				}
			}
			break
		}
	}
	return f
}

// SetFieldOptions sets options for select fields
func (f *Form) SetFieldOptions(name string, options []string) *Form {
	for i := range f.fields {
		if f.fields[i].Name == name && f.fields[i].Type == FieldTypeSelect {
			f.fields[i].Options = options
			if len(options) > 0 {
				f.fields[i].Value = options[0]
			}
			break
		}
	}
	return f
}

// SetFieldDisabled locks a field against focus and edits. A disabled field
// keeps its current value and is skipped when tabbing.
func (f *Form) SetFieldDisabled(name string, disabled bool) *Form {
	for i := range f.fields {
		if f.fields[i].Name == name {
			f.fields[i].Disabled = disabled
			f.fields[i].textInput.Blur()
			break
		}
	}
	// Move focus off a newly disabled field
	if f.focusIndex < len(f.fields) && f.fields[f.focusIndex].Disabled {
		f.nextField()
	}
	return f
}

// SetFieldError sets an error message on a field
func (f *Form) SetFieldError(name, msg string) *Form {
	for i := range f.fields {
		if f.fields[i].Name == name {
			f.fields[i].Error = msg
			break
		}
	}
	return f
}

// Update handles form input and updates
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			f.nextField()
		case "shift+tab":
			f.prevField()
		case "up":
			if f.fields[f.focusIndex].Type == FieldTypeSelect {
				f.prevSelectOption()
			}
		case "down":
			if f.fields[f.focusIndex].Type == FieldTypeSelect {
				f.nextSelectOption()
			}
		case " ":
			if f.fields[f.focusIndex].Type == FieldTypeSelect {
				f.nextSelectOption()
			}
		}
	}

	// Update the focused field
	if f.focusIndex < len(f.fields) {
		field := &f.fields[f.focusIndex]

		if !field.Disabled && (field.Type == FieldTypeText || field.Type == FieldTypeNumber) {
			var cmd tea.Cmd
			field.textInput, cmd = field.textInput.Update(msg)
			field.Value = field.textInput.Value()
			cmds = append(cmds, cmd)

			// Clear error when user types
			if field.Error != "" {
				field.Error = ""
			}
		}
	}

	return f, tea.Batch(cmds...)
}

// View renders the form
func (f *Form) View() string {
	if len(f.fields) == 0 {
		return "No fields defined"
	}

	var content strings.Builder

	for i, field := range f.fields {
		label := field.Label
		if field.Required {
			label += " *"
		}
		content.WriteString(f.labelStyle.Render(label))
		content.WriteString("\n")

		var fieldView string
		fieldStyle := f.inputStyle
		if field.Disabled {
			fieldStyle = f.disabledStyle
		} else if i == f.focusIndex {
			fieldStyle = f.focusedStyle
		}

		switch field.Type {
		case FieldTypeText, FieldTypeNumber:
			if field.Disabled {
				fieldView = fieldStyle.Render(field.Value)
			} else {
				fieldView = fieldStyle.Render(field.textInput.View())
			}

		case FieldTypeSelect:
			selectedValue := ""
			if len(field.Options) > 0 && field.selectedIdx < len(field.Options) {
				selectedValue = field.Options[field.selectedIdx]
			}

			selectText := selectedValue
			if i == f.focusIndex && !field.Disabled {
				selectText += " ▼"
			}
			fieldView = fieldStyle.Render(selectText)
		}

		content.WriteString(fieldView)
		content.WriteString("\n")

		if field.Error != "" {
			content.WriteString(f.errorStyle.Render("⚠ " + field.Error))
			content.WriteString("\n")
		}

		if i < len(f.fields)-1 {
			content.WriteString("\n")
		}
	}

	return content.String()
}

// nextField moves focus to the next enabled field
func (f *Form) nextField() {
	f.moveFocus(1)
}

// prevField moves focus to the previous enabled field
func (f *Form) prevField() {
	f.moveFocus(-1)
}

func (f *Form) moveFocus(delta int) {
	if len(f.fields) == 0 {
		return
	}

	f.fields[f.focusIndex].textInput.Blur()

	for range f.fields {
		f.focusIndex = (f.focusIndex + delta + len(f.fields)) % len(f.fields)
		if !f.fields[f.focusIndex].Disabled {
			break
		}
	}

	field := &f.fields[f.focusIndex]
	if !field.Disabled && (field.Type == FieldTypeText || field.Type == FieldTypeNumber) {
		field.textInput.Focus()
	}
}

// nextSelectOption moves to the next option in a select field
func (f *Form) nextSelectOption() {
	field := &f.fields[f.focusIndex]
	if field.Type != FieldTypeSelect || field.Disabled || len(field.Options) == 0 {
		return
	}

	field.selectedIdx = (field.selectedIdx + 1) % len(field.Options)
	field.Value = field.Options[field.selectedIdx]
}

// prevSelectOption moves to the previous option in a select field
func (f *Form) prevSelectOption() {
	field := &f.fields[f.focusIndex]
	if field.Type != FieldTypeSelect || field.Disabled || len(field.Options) == 0 {
		return
	}

	field.selectedIdx--
	if field.selectedIdx < 0 {
		field.selectedIdx = len(field.Options) - 1
	}
	field.Value = field.Options[field.selectedIdx]
}

// GetValues returns all form field values as a map
func (f *Form) GetValues() map[string]string {
	values := make(map[string]string)
	for _, field := range f.fields {
		values[field.Name] = field.Value
	}
	return values
}

// GetValue returns the value of a specific field
func (f *Form) GetValue(name string) string {
	for _, field := range f.fields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}

// Reset clears all form fields
func (f *Form) Reset() *Form {
	for i := range f.fields {
		f.fields[i].Value = ""
		f.fields[i].Error = ""
		f.fields[i].Disabled = false
		f.fields[i].textInput.SetValue("")
		f.fields[i].selectedIdx = 0
		if len(f.fields[i].Options) > 0 {
			f.fields[i].Value = f.fields[i].Options[0]
		}
	}

	f.focusIndex = 0
	if len(f.fields) > 0 {
		f.fields[0].textInput.Focus()
	}

	return f
}

// SetSize sets the form dimensions
func (f *Form) SetSize(width, height int) *Form {
	f.width = width
	f.height = height

	inputWidth := width - 4
	if inputWidth > 10 {
		for i := range f.fields {
			f.fields[i].textInput.Width = inputWidth
		}
	}

	return f
}
