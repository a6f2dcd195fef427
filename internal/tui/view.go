package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	editStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	modalStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	labelStyle  = lipgloss.NewStyle().Width(6)
)

const idColWidth = 4

func (m Model) View() string {
	switch m.modal {
	case modalAdd:
		return m.viewAddModal()
	case modalConfirmDelete:
		return m.viewConfirmModal()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("电影目录"))
	b.WriteString("\n\n")

	b.WriteString(m.search.View())
	if m.searching {
		b.WriteString("  搜索中…")
	}
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString("加载中…\n")
	case len(m.st.Movies) == 0:
		b.WriteString(helpStyle.Render("（列表为空）"))
		b.WriteString("\n")
	default:
		b.WriteString(m.viewTable())
	}

	b.WriteString("\n")
	if m.status != "" {
		if m.statusErr {
			b.WriteString(errStyle.Render(m.status))
		} else {
			b.WriteString(okStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewTable() string {
	var b strings.Builder

	cols := []string{pad("ID", idColWidth)}
	for i, label := range fieldLabels {
		cols = append(cols, pad(label, fieldWidths[i]))
	}
	cols = append(cols, "操作")
	b.WriteString("  ")
	b.WriteString(headerStyle.Render(strings.Join(cols, " ")))
	b.WriteString("\n")

	for i, row := range m.st.Movies {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("▸ ")
		}
		b.WriteString(marker)

		// 每个字段、包括操作列，都由同一个分支决定显示行值还是影子输入。
		if m.st.Editing(row.ID) {
			cells := []string{pad(strconv.FormatInt(row.ID, 10), idColWidth)}
			for j := range m.editInputs {
				cells = append(cells, pad(m.editInputs[j].View(), fieldWidths[j]))
			}
			action := "回车 保存  esc 取消"
			if m.saving {
				action = "保存中…"
			}
			b.WriteString(editStyle.Render(strings.Join(cells, " ")))
			b.WriteString(" ")
			b.WriteString(helpStyle.Render(action))
		} else {
			cells := []string{
				pad(strconv.FormatInt(row.ID, 10), idColWidth),
				pad(truncate(row.Title, fieldWidths[0]), fieldWidths[0]),
				pad(truncate(row.Genre, fieldWidths[1]), fieldWidths[1]),
				pad(truncate(row.Director, fieldWidths[2]), fieldWidths[2]),
				pad(strconv.Itoa(row.Year), fieldWidths[3]),
				pad(formatRating(row.Rating), fieldWidths[4]),
			}
			b.WriteString(strings.Join(cells, " "))
			b.WriteString(" ")
			b.WriteString(helpStyle.Render("e 编辑  d 删除"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewAddModal() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("添加电影"))
	b.WriteString("\n\n")
	for i := range m.addInputs {
		b.WriteString(labelStyle.Render(fieldLabels[i]))
		b.WriteString(m.addInputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.creating {
		b.WriteString("添加中…\n")
	}
	if m.status != "" && m.statusErr {
		b.WriteString(errStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab 切换字段  回车 提交  esc 取消"))
	return m.overlay(modalStyle.Render(b.String()))
}

func (m Model) viewConfirmModal() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("确认删除 %q？", m.confirmTitle))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("y 删除  n 取消"))
	return m.overlay(modalStyle.Render(b.String()))
}

// overlay 把弹窗内容放到屏幕中央；尺寸未知时原样返回。
func (m Model) overlay(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) helpLine() string {
	if m.st.Slot.Active {
		return "tab 切换字段  回车 保存  esc 取消"
	}
	if m.focus == focusSearch {
		return "回车 搜索  esc 返回列表"
	}
	return "↑/↓ 移动  e 编辑  a 添加  d 删除  / 搜索  r 刷新  q 退出"
}

func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
