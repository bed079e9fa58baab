package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/karandattani71/vaultview/internal/filter"
)

// Panel field order. The panel holds pending edits locally until Apply, so a
// debounced search commit landing mid-edit never disturbs them.
const (
	panelFileType = iota
	panelCategory
	panelTag
	panelFavorite
	panelMinSize
	panelMaxSize
	panelStartDate
	panelEndDate
	panelPreset
	panelSortKey
	panelFieldCount
)

var panelLabels = [panelFieldCount]string{
	"File type",
	"Category",
	"Tag",
	"Favorite",
	"Min size",
	"Max size",
	"Start date",
	"End date",
	"Date preset",
	"Sort",
}

var panelHints = [panelFieldCount]string{
	"pdf, image/png, ...",
	"",
	"",
	"yes / no / blank",
	"bytes or 10MB",
	"bytes or 10MB",
	"2006-01-02",
	"2006-01-02",
	"today|yesterday|this_week|this_month|this_year",
	"-uploaded_at, size, original_filename, ...",
}

// filterPanel is the advanced filter form.
type filterPanel struct {
	inputs [panelFieldCount]textinput.Model
	focus  int
	open   bool
}

func newFilterPanel() filterPanel {
	var p filterPanel
	for i := range p.inputs {
		in := textinput.New()
		in.Placeholder = panelHints[i]
		in.CharLimit = 64
		in.Width = 32
		p.inputs[i] = in
	}
	return p
}

// load prefills the inputs from the active state. Called on open only, so
// pending edits survive state publishes that happen while the panel is up.
func (p *filterPanel) load(s filter.State) {
	p.inputs[panelFileType].SetValue(s.FileType)
	p.inputs[panelCategory].SetValue(s.ContentCategory)
	p.inputs[panelTag].SetValue(s.Tag)
	switch {
	case s.Favorite == nil:
		p.inputs[panelFavorite].SetValue("")
	case *s.Favorite:
		p.inputs[panelFavorite].SetValue("yes")
	default:
		p.inputs[panelFavorite].SetValue("no")
	}
	p.inputs[panelMinSize].SetValue(formatSize(s.MinSize))
	p.inputs[panelMaxSize].SetValue(formatSize(s.MaxSize))
	p.inputs[panelStartDate].SetValue(formatDate(s.StartDate))
	p.inputs[panelEndDate].SetValue(formatDate(s.EndDate))
	p.inputs[panelPreset].SetValue(string(s.DatePreset))
	p.inputs[panelSortKey].SetValue(s.SortKey)
	p.setFocus(0)
}

func (p *filterPanel) setFocus(idx int) {
	p.focus = (idx + panelFieldCount) % panelFieldCount
	for i := range p.inputs {
		if i == p.focus {
			p.inputs[i].Focus()
		} else {
			p.inputs[i].Blur()
		}
	}
}

// form snapshots the raw panel text for the controller to parse.
func (p *filterPanel) form() filter.Form {
	return filter.Form{
		FileType:        p.inputs[panelFileType].Value(),
		ContentCategory: p.inputs[panelCategory].Value(),
		Tag:             p.inputs[panelTag].Value(),
		Favorite:        p.inputs[panelFavorite].Value(),
		MinSize:         p.inputs[panelMinSize].Value(),
		MaxSize:         p.inputs[panelMaxSize].Value(),
		StartDate:       p.inputs[panelStartDate].Value(),
		EndDate:         p.inputs[panelEndDate].Value(),
		DatePreset:      p.inputs[panelPreset].Value(),
		SortKey:         p.inputs[panelSortKey].Value(),
	}
}

func (p *filterPanel) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return cmd
}

func (p *filterPanel) view(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Filters"))
	b.WriteString("\n\n")
	for i := range p.inputs {
		b.WriteString(styles.Label.Render(panelLabels[i]))
		b.WriteString(p.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Faint.Render("enter apply · esc discard · tab/shift+tab move"))
	return styles.Panel.Render(b.String())
}

func formatSize(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02")
}
