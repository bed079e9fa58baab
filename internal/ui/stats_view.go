package ui

import (
	"fmt"
	"strings"

	"github.com/karandattani71/vaultview/internal/cache"
	"github.com/karandattani71/vaultview/internal/catalog"
)

func (m *Model) renderStats() string {
	stats, ok := m.stats.Payload.(*catalog.Stats)
	if !ok || stats == nil {
		switch m.stats.Status {
		case cache.StatusError:
			if m.stats.Err != nil {
				return m.styles.StatusErr.Render("stats unavailable: " + m.stats.Err.Error())
			}
			return m.styles.StatusErr.Render("stats unavailable")
		default:
			return m.spin.View() + " loading statistics"
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Storage statistics"))
	if m.stats.Status == cache.StatusStale || m.stats.Status == cache.StatusLoading {
		b.WriteString("  " + m.spin.View() + m.styles.Faint.Render(" refreshing"))
	}
	if m.stats.Status == cache.StatusError && m.stats.Err != nil {
		b.WriteString("  " + m.styles.StatusErr.Render("(showing last known values)"))
	}
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(m.styles.Label.Render(label))
		b.WriteString(m.styles.Value.Render(value))
		b.WriteString("\n")
	}
	row("Unique files", fmt.Sprintf("%d", stats.UniqueFiles))
	row("Total uploads", fmt.Sprintf("%d", stats.TotalUploads))
	row("Dup rate", fmt.Sprintf("%.1f%%", stats.DuplicationRate))
	row("Stored", humanBytes(stats.Storage.ActualBytes))
	row("Saved", humanBytes(stats.Storage.SavedBytes))
	row("Without dedup", humanBytes(stats.Storage.WithoutDedupBytes))
	row("Efficiency", fmt.Sprintf("%.1f%%", stats.Storage.Efficiency))

	if len(stats.FileTypes) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Header.Render("By file type"))
		b.WriteString("\n")
		for _, ft := range stats.FileTypes {
			b.WriteString(fmt.Sprintf("  %-24s %6d  %s\n",
				truncate(ft.FileType, 24), ft.Count, humanBytes(ft.TotalSize)))
		}
	}

	if m.savings != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render("dedup has saved " + humanBytes(m.savings.TotalBytes) + " so far"))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Faint.Render("esc/s back · r refresh"))
	return b.String()
}
