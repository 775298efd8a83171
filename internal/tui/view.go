package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	sc := m.app.Scene()
	th := sc.Theme
	if th == nil {
		th = theme.Default()
	}
	canvasW, canvasH := m.canvasSize()

	header := lipgloss.NewStyle().Width(m.width).Render(m.renderToolbar(th))
	canvas := strings.Join(m.renderCanvas(sc, th, canvasW, canvasH), "\n")
	sidebar := lipgloss.NewStyle().Width(sidebarWidth).Height(canvasH).Render(
		lipgloss.JoinVertical(lipgloss.Left, m.renderList(), m.renderProps()),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, " ", sidebar)

	status := dimStyle.Render(" " + m.status + " ")
	if m.statusErr {
		status = errorStyle.Render(" " + m.status + " ")
	}
	footer := lipgloss.JoinVertical(lipgloss.Left, status, m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderToolbar(th *theme.Theme) string {
	active := m.app.ActiveTool()
	parts := []string{titleStyle.Render(" sketchpad ")}
	for _, k := range tool.Kinds() {
		label := fmt.Sprintf("[%s]%s", strings.ToLower(k.Label()[:1]), k.Label()[1:])
		if k == active {
			parts = append(parts, activeStyle.Render(label))
		} else {
			parts = append(parts, dimStyle.Render(label))
		}
	}
	parts = append(parts, dimStyle.Render("theme: "+th.Name))
	return strings.Join(parts, " ")
}

func (m Model) renderCanvas(sc render.Scene, th *theme.Theme, w, h int) []string {
	buf := newBrailleBuf(w, h)
	for _, sh := range sc.Drawables() {
		pts, closed := render.Outline(sh)
		if pts == nil {
			continue
		}
		buf.pen = sh.Color()
		if sh.ID() == sc.Selected && !sh.IsPreview() {
			buf.pen = theme.Hex(th.Selection)
		}
		buf.drawPath(pts, closed, m.scale)
	}
	return buf.render(hexColor(th.Canvas))
}

func (m Model) renderList() string {
	title := titleStyle.Render("Shapes")
	if m.focus == focusList {
		title += dimStyle.Render("  enter select  v visible  x delete")
	}
	return boxStyle.Width(sidebarWidth - 2).Render(lipgloss.JoinVertical(lipgloss.Left, title, m.tbl.View()))
}

func (m Model) renderProps() string {
	d := m.panel.Draft()
	if d.ID() == "" {
		return boxStyle.Width(sidebarWidth - 2).Render(dimStyle.Render("No shape selected"))
	}
	lines := []string{titleStyle.Render(strings.ToUpper(string(d.Type())[:1]) + string(d.Type())[1:])}
	if sh := m.panel.Shape(); sh != nil {
		vis := "[x]"
		if !sh.Visible() {
			vis = "[ ]"
		}
		lines = append(lines, vis+" visible")
	}
	if m.focus == focusProps {
		for _, f := range m.fields {
			lines = append(lines, f.input.View())
		}
		lines = append(lines, dimStyle.Render("enter update  esc discard"))
	} else {
		for _, p := range d.Points() {
			lines = append(lines, fmt.Sprintf("%-10s %s, %s", p.Label, formatNumber(p.X), formatNumber(p.Y)))
		}
		for _, n := range d.Numbers() {
			lines = append(lines, fmt.Sprintf("%-10s %s", n.Label, formatNumber(n.Value)))
		}
		lines = append(lines, fmt.Sprintf("%-10s %s", "Color", d.Color()))
		lines = append(lines, dimStyle.Render("enter edit  v visible  x delete"))
	}
	return boxStyle.Width(sidebarWidth - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"s/l/c/e/p tools",
		"esc cancel",
		"tab list",
		"t theme",
		"+/- zoom",
		"ctrl+s save",
		"ctrl+o open",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
