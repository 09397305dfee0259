package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const footerHelp = "↑/↓ move  enter select  c cancel update  q quit"

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.header()
	switch m.mode {
	case ModeLoginForm:
		if m.loginForm != nil {
			return m.viewLoginForm(styles.Title.Render(header))
		}
	case ModePatchForm:
		if m.patchForm != nil {
			return m.viewPatchForm(styles.Title.Render(header))
		}
	}

	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: header, style: styles.Title}, styledLine{})

	m.menu.EnsureCursorVisible(m.maxVisibleItems())
	start, end := m.visibleRange()
	for idx := start; idx < end; idx++ {
		lines = append(lines, m.buildItemLine(idx))
	}

	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: m.progress.ViewAs(m.percent), raw: true})
	statusStyle := styles.Status
	if m.statusErr {
		statusStyle = styles.StatusError
	}
	lines = append(lines, styledLine{text: m.status, style: statusStyle})
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	lines = append(lines, styledLine{}, styledLine{text: footerHelp, style: styles.Footer})

	lines = applyWidth(lines, m.width)
	lines = limitHeight(lines, m.height, m.width)
	return renderLines(lines)
}

func (m *Model) header() string {
	title := strings.TrimSpace(m.title)
	if title == "" {
		title = "Patcher"
	}
	return title
}

func (m *Model) visibleRange() (int, int) {
	total := len(m.menu.Items)
	maxItems := m.maxVisibleItems()
	if maxItems <= 0 || total <= maxItems {
		return 0, total
	}
	start := m.menu.ViewportOffset
	if start+maxItems > total {
		start = total - maxItems
	}
	if start < 0 {
		start = 0
	}
	return start, start + maxItems
}

func (m *Model) buildItemLine(idx int) styledLine {
	item := m.menu.Items[idx]
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if item.Disabled {
		lineStyle = styles.DisabledItem
	}
	if idx == m.menu.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		if !item.Disabled {
			lineStyle = styles.SelectedItem
		}
	}
	fullText := indicator + " " + item.Label
	if m.width > 0 {
		if pad := m.width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 7 // title, blank, blank, progress, status, blank, footer
	if info := m.currentInfo(); info != "" {
		used++
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
