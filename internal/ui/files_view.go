package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/karandattani71/vaultview/internal/cache"
	"github.com/karandattani71/vaultview/internal/catalog"
	"github.com/karandattani71/vaultview/internal/filter"
)

func newFilesTable(theme Theme) table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 34},
		{Title: "Type", Width: 16},
		{Title: "Size", Width: 10},
		{Title: "Uploaded", Width: 17},
		{Title: "Refs", Width: 5},
		{Title: "Tags", Width: 18},
	}
	t := table.New(table.WithColumns(columns), table.WithFocused(true))

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent)).
		BorderForeground(lipgloss.Color(theme.Border))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(theme.Background)).
		Background(lipgloss.Color(theme.Accent))
	t.SetStyles(styles)
	return t
}

func (m *Model) resizeTable() {
	height := m.height - 7
	if height < 3 {
		height = 3
	}
	m.filesTable.SetHeight(height)
	m.updateFilesRows()
}

func (m *Model) updateFilesRows() {
	page, ok := m.files.Payload.(catalog.FileListPage)
	if !ok {
		m.filesTable.SetRows(nil)
		return
	}
	rows := make([]table.Row, 0, len(page.Results))
	for _, f := range page.Results {
		fav := ""
		if f.IsFavorite {
			fav = "★ "
		}
		rows = append(rows, table.Row{
			fav + truncate(f.OriginalFilename, 32),
			truncate(f.FileType, 16),
			humanBytes(f.Size),
			humanTime(f.UploadedAt),
			fmt.Sprintf("%d", f.ReferenceCount),
			truncate(strings.Join(f.Tags, ","), 18),
		})
	}
	m.filesTable.SetRows(rows)
	if cursor := m.filesTable.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.filesTable.SetCursor(len(rows) - 1)
	}
}

func (m *Model) selectedFile() (catalog.File, bool) {
	page, ok := m.files.Payload.(catalog.FileListPage)
	if !ok {
		return catalog.File{}, false
	}
	idx := m.filesTable.Cursor()
	if idx < 0 || idx >= len(page.Results) {
		return catalog.File{}, false
	}
	return page.Results[idx], true
}

func (m *Model) handleFilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "d":
		if file, ok := m.selectedFile(); ok {
			return m, m.deleteCmd(file)
		}
		return m, nil

	case "t":
		file, ok := m.selectedFile()
		if !ok {
			return m, nil
		}
		m.promptMode = promptTag
		m.promptFile = file
		m.prompt.Prompt = "tags (comma separated): "
		m.prompt.SetValue(strings.Join(file.Tags, ","))
		m.prompt.Focus()
		return m, nil

	case "X":
		m.search.SetValue("")
		m.controller.ClearSearch()
		return m, nil

	case "[":
		if page := m.currentPage(); page > 1 {
			m.controller.SetPage(page - 1)
		}
		return m, nil

	case "]":
		if page, ok := m.files.Payload.(catalog.FileListPage); ok && page.Next != nil {
			m.controller.SetPage(m.currentPage() + 1)
		}
		return m, nil

	case "1", "2", "3", "4", "5", "6":
		chips := m.chips()
		idx := int(key[0] - '1')
		if idx < len(chips) {
			// One chip clears its whole dimension, not just one field.
			m.controller.ClearDimension(chips[idx].dim)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filesTable, cmd = m.filesTable.Update(msg)
	return m, cmd
}

func (m *Model) currentPage() int {
	if m.state.Page > 0 {
		return m.state.Page
	}
	return 1
}

type chipView struct {
	dim   filter.Dimension
	label string
}

// chips summarizes the non-default filter dimensions in a stable order.
func (m *Model) chips() []chipView {
	s := m.state
	var chips []chipView
	if s.FileType != "" {
		chips = append(chips, chipView{filter.DimFileType, "type:" + s.FileType})
	}
	if s.ContentCategory != "" {
		chips = append(chips, chipView{filter.DimCategory, "category:" + s.ContentCategory})
	}
	if s.Tag != "" {
		chips = append(chips, chipView{filter.DimTag, "tag:" + s.Tag})
	}
	if s.Favorite != nil {
		label := "fav:no"
		if *s.Favorite {
			label = "fav:yes"
		}
		chips = append(chips, chipView{filter.DimFavorite, label})
	}
	if s.MinSize != nil || s.MaxSize != nil {
		label := "size:"
		if s.MinSize != nil {
			label += humanBytes(*s.MinSize)
		}
		label += "–"
		if s.MaxSize != nil {
			label += humanBytes(*s.MaxSize)
		}
		chips = append(chips, chipView{filter.DimSize, label})
	}
	if s.DatePreset != "" {
		chips = append(chips, chipView{filter.DimDate, "date:" + string(s.DatePreset)})
	} else if s.StartDate != nil || s.EndDate != nil {
		label := "date:"
		if s.StartDate != nil {
			label += s.StartDate.Format("2006-01-02")
		}
		label += "–"
		if s.EndDate != nil {
			label += s.EndDate.Format("2006-01-02")
		}
		chips = append(chips, chipView{filter.DimDate, label})
	}
	return chips
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render("vaultview")
	badge := ""
	if count := m.state.ActiveFilterCount(); count > 0 {
		badge = m.styles.ChipBadge.Render(fmt.Sprintf(" [%d filters]", count))
	}
	search := m.search.View()
	if !m.searchFocused && m.search.Value() == "" {
		search = m.styles.Faint.Render("/ to search")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, badge, "  ", search)
}

func (m *Model) renderFiles() string {
	var b strings.Builder

	if chips := m.chips(); len(chips) > 0 {
		parts := make([]string, 0, len(chips))
		for i, c := range chips {
			parts = append(parts, m.styles.Chip.Render(fmt.Sprintf("%d·%s", i+1, c.label)))
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString(m.styles.Faint.Render("  (press number to clear)"))
		b.WriteString("\n")
	}

	b.WriteString(m.filesTable.View())
	b.WriteString("\n")

	if page, ok := m.files.Payload.(catalog.FileListPage); ok {
		b.WriteString(m.styles.Muted.Render(
			fmt.Sprintf("page %d · %d files total", m.currentPage(), page.Count)))
	}
	return b.String()
}

func (m *Model) renderStatusBar() string {
	var parts []string

	switch m.files.Status {
	case cache.StatusLoading:
		parts = append(parts, m.spin.View()+" loading")
	case cache.StatusStale:
		parts = append(parts, m.spin.View()+" refreshing")
	case cache.StatusError:
		if m.files.Err != nil {
			parts = append(parts, m.styles.StatusErr.Render("catalog error: "+m.files.Err.Error()))
		}
	}

	if m.statusMsg != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.StatusErr
		}
		parts = append(parts, style.Render(m.statusMsg))
	}

	parts = append(parts, m.styles.Faint.Render(
		"/ search · f filters · s stats · u upload · d delete · t tag · r refresh · R reset · q quit"))
	return strings.Join(parts, "  ")
}
