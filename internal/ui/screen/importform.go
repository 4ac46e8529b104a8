package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haoyun/fundwatch/internal/api"
	"github.com/haoyun/fundwatch/internal/format"
	"github.com/haoyun/fundwatch/internal/portfolio"
	"github.com/haoyun/fundwatch/internal/ui"
	"github.com/haoyun/fundwatch/internal/ui/component"
	"github.com/haoyun/fundwatch/internal/ui/router"
	"github.com/haoyun/fundwatch/internal/ui/style"
)

// ImportFormScreen imports a fund by held amount. The backend converts the
// amount into units at the latest net value and merges with any existing
// position for the same fund.
type ImportFormScreen struct {
	ctx     *ui.Context
	form    *component.Form
	helpBar *component.HelpBar

	busy    bool
	message string
	isErr   bool

	width  int
	height int
}

// NewImportFormScreen creates the import form
func NewImportFormScreen(ctx *ui.Context) *ImportFormScreen {
	form := component.NewForm().
		AddField("code", component.FieldTypeText, "基金代码", true, "如 161725").
		AddField("amount", component.FieldTypeNumber, "持仓金额", true, "").
		AddField("name", component.FieldTypeText, "名称（可选）", false, "")

	s := &ImportFormScreen{
		ctx:     ctx,
		form:    form,
		helpBar: component.NewHelpBar(),
	}
	s.helpBar.SetKeyBindings(ctx.Keys.ContextualHelp(ui.RouteImportForm))
	return s
}

// Init is a no-op
func (s *ImportFormScreen) Init() tea.Cmd {
	return nil
}

// Update handles messages for the import form
func (s *ImportFormScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.ImportDoneMsg:
		s.busy = false
		actionText := "合并"
		if msg.Item.Status == api.ImportAdded {
			actionText = "新增"
		}
		s.setMessage(fmt.Sprintf("%s成功：%s，导入金额 %s，换算份额 %s",
			actionText, msg.Item.Code,
			format.Number(msg.Item.Amount),
			format.Number(msg.Item.Units)), false)
		s.form.Reset()
		return s, func() tea.Msg { return ui.RefreshRequestMsg{} }

	case ui.ImportFailedMsg:
		s.busy = false
		s.setMessage(fmt.Sprintf("导入失败：%s", msg.Err.Error()), true)
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return s, tea.Quit
		}
		if key.Matches(msg, s.ctx.Keys.Enter) {
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

// submit validates the form and issues the import request
func (s *ImportFormScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}

	values := s.form.GetValues()
	code := strings.TrimSpace(values["code"])
	amount, _ := portfolio.ParseAmount(values["amount"])

	if err := portfolio.ValidateImportInput(code, amount); err != nil {
		s.setMessage(err.Error(), true)
		return nil
	}

	s.busy = true
	s.setMessage("", false)

	return s.ctx.ImportCmd(api.ImportItem{
		Code:   code,
		Amount: amount,
		Name:   strings.TrimSpace(values["name"]),
	})
}

func (s *ImportFormScreen) setMessage(message string, isErr bool) {
	s.message = message
	s.isErr = isErr
}

// View renders the import form
func (s *ImportFormScreen) View() string {
	sections := []string{
		style.TitleStyle.Render("按金额导入基金"),
		s.form.View(),
	}

	if s.busy {
		sections = append(sections, style.MutedStyle.Render("导入中..."))
	} else if s.message != "" {
		if s.isErr {
			sections = append(sections, style.ErrorStyle.Render(s.message))
		} else {
			sections = append(sections, style.SuccessStyle.Render(s.message))
		}
	}

	sections = append(sections, s.helpBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize adjusts layout to the terminal size
func (s *ImportFormScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.form.SetSize(width, height)
	s.helpBar.SetWidth(width)
}
