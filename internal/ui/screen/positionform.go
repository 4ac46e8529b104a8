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

// Asset types accepted by the backend.
var assetTypeOptions = []string{"fund", "stock"}

// PositionFormScreen creates a position or, when edit mode is armed, updates
// the existing one. Identity fields are locked while editing.
type PositionFormScreen struct {
	ctx     *ui.Context
	form    *component.Form
	helpBar *component.HelpBar

	editing bool
	target  portfolio.Identity
	busy    bool
	message string
	isErr   bool

	width  int
	height int
}

// NewPositionFormScreen creates the form, prefilled when editing
func NewPositionFormScreen(ctx *ui.Context) *PositionFormScreen {
	form := component.NewForm().
		AddField("asset_type", component.FieldTypeSelect, "资产类型", true, "").
		AddField("code", component.FieldTypeText, "资产代码", true, "如 161725 或 600519").
		AddField("name", component.FieldTypeText, "名称（可选）", false, "").
		AddField("units", component.FieldTypeNumber, "份额/股数", true, "").
		AddField("cost_price", component.FieldTypeNumber, "成本价", true, "")
	form.SetFieldOptions("asset_type", assetTypeOptions)

	s := &PositionFormScreen{
		ctx:     ctx,
		form:    form,
		helpBar: component.NewHelpBar(),
	}
	s.helpBar.SetKeyBindings(ctx.Keys.ContextualHelp(ui.RoutePositionForm))

	if ctx.Edit.Editing() {
		pos := ctx.Edit.Prefill()
		s.editing = true
		s.target = ctx.Edit.Target()

		form.SetFieldValue("asset_type", pos.AssetType)
		form.SetFieldValue("code", pos.Code)
		form.SetFieldValue("name", pos.Name)
		form.SetFieldValue("units", format.PlainNumber(pos.Units))
		form.SetFieldValue("cost_price", format.PlainNumber(pos.CostPrice))

		// Identity is immutable; updates address it through the URL
		form.SetFieldDisabled("asset_type", true)
		form.SetFieldDisabled("code", true)

		s.message = fmt.Sprintf("正在编辑 %s", s.target)
	}

	return s
}

// Init is a no-op; the form has no asynchronous setup
func (s *PositionFormScreen) Init() tea.Cmd {
	return nil
}

// Update handles messages for the position form
func (s *PositionFormScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.PositionSavedMsg:
		s.busy = false
		message := msg.Message
		if message == "" {
			message = "操作成功"
		}
		s.setMessage(message, false)

		// Leaving edit mode after a save mirrors a successful form submit
		if s.editing {
			s.ctx.Edit.Reset()
			s.editing = false
		}
		s.form.Reset()
		s.form.SetFieldOptions("asset_type", assetTypeOptions)
		return s, func() tea.Msg { return ui.RefreshRequestMsg{} }

	case ui.PositionSaveFailedMsg:
		s.busy = false
		s.setMessage(fmt.Sprintf("操作失败：%s", msg.Err.Error()), true)
		return s, nil

	case tea.KeyMsg:
		// "q" stays typeable inside text fields
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

// submit validates the form and issues the create or update request
func (s *PositionFormScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}

	values := s.form.GetValues()
	code := strings.TrimSpace(values["code"])
	units, _ := portfolio.ParseAmount(values["units"])
	costPrice, _ := portfolio.ParseAmount(values["cost_price"])

	if err := portfolio.ValidatePositionInput(code, units, costPrice); err != nil {
		s.setMessage(err.Error(), true)
		return nil
	}

	var name *string
	if trimmed := strings.TrimSpace(values["name"]); trimmed != "" {
		name = &trimmed
	}

	s.busy = true
	s.setMessage("", false)

	if s.editing {
		return s.ctx.UpdateCmd(s.target, api.UpdatePositionRequest{
			Name:      name,
			Units:     units,
			CostPrice: costPrice,
		})
	}
	return s.ctx.CreateCmd(api.CreatePositionRequest{
		AssetType: values["asset_type"],
		Code:      code,
		Name:      name,
		Units:     units,
		CostPrice: costPrice,
	})
}

func (s *PositionFormScreen) setMessage(message string, isErr bool) {
	s.message = message
	s.isErr = isErr
}

// View renders the position form
func (s *PositionFormScreen) View() string {
	title := "新增持仓"
	if s.editing {
		title = "保存修改"
	}

	sections := []string{
		style.TitleStyle.Render(title),
		s.form.View(),
	}

	if s.busy {
		sections = append(sections, style.MutedStyle.Render("提交中..."))
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
func (s *PositionFormScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.form.SetSize(width, height)
	s.helpBar.SetWidth(width)
}
