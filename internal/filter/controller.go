package filter

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/karandattani71/vaultview/internal/debounce"
)

// Form carries the raw text of the advanced filter panel. The controller is
// the boundary where raw input becomes typed State fields: an empty field
// clears its filter, a malformed field is dropped silently and the previous
// value survives. Garbage never reaches the encoder.
type Form struct {
	FileType        string
	ContentCategory string
	Tag             string
	Favorite        string // "", "yes" or "no"
	MinSize         string // bytes, or a value with a KB/MB/GB suffix
	MaxSize         string
	StartDate       string // 2006-01-02
	EndDate         string
	DatePreset      string
	SortKey         string
}

// Controller owns the current State and is its only writer. Every accepted
// edit produces a new State published to subscribers in one atomic step, so
// observers never see a half-applied filter combination.
type Controller struct {
	mu    sync.Mutex
	state State
	subs  []func(State)
	gate  *debounce.Gate[string]
}

// NewController builds a controller starting from the default state. Search
// edits are coalesced through a debounce gate with the given quiet interval.
func NewController(searchDelay time.Duration) *Controller {
	c := &Controller{state: DefaultState()}
	c.gate = debounce.NewGate(searchDelay, c.commitSearch)
	return c
}

// Close cancels any pending debounced search emission.
func (c *Controller) Close() {
	c.gate.Close()
}

// Current returns the active state.
func (c *Controller) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to be called with every published state, in publish
// order. Subscribers must not call back into the controller.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// SetSearch routes a free-text edit through the debounce gate. Only the last
// value of a rapid burst is committed and published.
func (c *Controller) SetSearch(text string) {
	c.gate.Notify(text)
}

// ClearSearch drops the search term immediately, cancelling any pending
// debounced emission.
func (c *Controller) ClearSearch() {
	c.gate.Cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.state
	next.Search = ""
	next.Page = 0
	c.publish(next)
}

func (c *Controller) commitSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.state
	next.Search = strings.TrimSpace(text)
	next.Page = 0
	c.publish(next)
}

// Apply merges the complete pending set of advanced edits into the state in
// one atomic publish. Date fields and the date preset are mutually
// exclusive: whichever the form sets clears the other.
func (c *Controller) Apply(form Form) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.state
	next.FileType = strings.TrimSpace(form.FileType)
	next.ContentCategory = strings.TrimSpace(form.ContentCategory)
	next.Tag = strings.TrimSpace(form.Tag)
	next.Favorite = parseFavorite(form.Favorite, next.Favorite)
	next.MinSize = parseSizeField(form.MinSize, next.MinSize)
	next.MaxSize = parseSizeField(form.MaxSize, next.MaxSize)

	start := parseDateField(form.StartDate, next.StartDate)
	end := parseDateField(form.EndDate, next.EndDate)
	preset := parsePresetField(form.DatePreset, next.DatePreset)
	if start != nil || end != nil {
		// Explicit dates win over a preset arriving in the same form.
		next.StartDate, next.EndDate, next.DatePreset = start, end, ""
	} else if preset != "" {
		next.StartDate, next.EndDate, next.DatePreset = nil, nil, preset
	} else {
		next.StartDate, next.EndDate, next.DatePreset = nil, nil, ""
	}

	if key := strings.TrimSpace(form.SortKey); key != "" {
		next.SortKey = key
	}
	next.Page = 0
	c.publish(next)
}

// ClearDimension removes every field of the dimension and republishes, so a
// single chip clears the whole axis it represents.
func (c *Controller) ClearDimension(dim Dimension) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.state.clearDimension(dim)
	next.Page = 0
	c.publish(next)
}

// SetSortKey changes the sort order and resets pagination.
func (c *Controller) SetSortKey(key string) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultSortKey
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.state
	next.SortKey = key
	next.Page = 0
	c.publish(next)
}

// SetPage moves to the given positive page number.
func (c *Controller) SetPage(page int) {
	if page < 1 {
		page = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.state
	next.Page = page
	c.publish(next)
}

// Reset restores every field to its default and publishes once.
func (c *Controller) Reset() {
	c.gate.Cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publish(DefaultState())
}

// publish replaces the current state and notifies subscribers. Callers hold
// c.mu, which totally orders published states.
func (c *Controller) publish(next State) {
	c.state = next
	for _, fn := range c.subs {
		fn(next)
	}
}

func parseFavorite(raw string, prev *bool) *bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return nil
	case "yes", "true", "y":
		v := true
		return &v
	case "no", "false", "n":
		v := false
		return &v
	}
	return prev
}

func parseSizeField(raw string, prev *int64) *int64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	bytes, ok := ParseSize(trimmed)
	if !ok {
		return prev
	}
	return &bytes
}

func parseDateField(raw string, prev *time.Time) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return prev
	}
	return &t
}

func parsePresetField(raw string, prev Preset) Preset {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if p := ParsePreset(trimmed); p != "" {
		return p
	}
	return prev
}

// ParseSize converts a size with an optional KB/MB/GB suffix to bytes. Unit
// handling is a presentation concern resolved here, before the encoder
// boundary; the encoder only ever sees bytes.
func ParseSize(raw string) (int64, bool) {
	trimmed := strings.TrimSpace(strings.ToUpper(raw))
	multiplier := int64(1)
	for _, unit := range []struct {
		suffix string
		factor int64
	}{
		{"GB", 1 << 30},
		{"MB", 1 << 20},
		{"KB", 1 << 10},
		{"B", 1},
	} {
		if strings.HasSuffix(trimmed, unit.suffix) {
			multiplier = unit.factor
			trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, unit.suffix))
			break
		}
	}
	if trimmed == "" {
		return 0, false
	}
	number, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || number < 0 {
		return 0, false
	}
	return int64(number * float64(multiplier)), true
}
