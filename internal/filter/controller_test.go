package filter

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

const testQuiet = 25 * time.Millisecond

// recorder collects every published state in order.
type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) record(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) snapshot() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func newTestController(t *testing.T) (*Controller, *recorder) {
	t.Helper()
	c := NewController(testQuiet)
	t.Cleanup(c.Close)
	var r recorder
	c.Subscribe(r.record)
	return c, &r
}

func TestController_ResetRestoresDefaultsExactly(t *testing.T) {
	c, _ := newTestController(t)

	c.Apply(Form{FileType: "pdf", MinSize: "1024", DatePreset: "this_week", SortKey: "size"})
	c.SetPage(4)
	c.Reset()

	if got, want := c.Current(), DefaultState(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Current() after Reset = %#v, want %#v", got, want)
	}
}

func TestController_DatePresetAndExplicitDatesAreMutuallyExclusive(t *testing.T) {
	c, _ := newTestController(t)

	c.Apply(Form{DatePreset: "this_week"})
	if s := c.Current(); s.DatePreset != PresetThisWeek || s.StartDate != nil || s.EndDate != nil {
		t.Fatalf("after preset: %#v, want preset only", s)
	}

	c.Apply(Form{StartDate: "2024-03-01"})
	s := c.Current()
	if s.DatePreset != "" {
		t.Fatalf("DatePreset = %q after explicit date, want cleared", s.DatePreset)
	}
	if s.StartDate == nil || s.StartDate.Format("2006-01-02") != "2024-03-01" {
		t.Fatalf("StartDate = %v, want 2024-03-01", s.StartDate)
	}

	// And back: setting the preset clears both dates.
	c.Apply(Form{DatePreset: "today"})
	s = c.Current()
	if s.DatePreset != PresetToday || s.StartDate != nil || s.EndDate != nil {
		t.Fatalf("after preset again: %#v, want preset only", s)
	}
}

func TestController_ApplyPublishesAtomically(t *testing.T) {
	c, r := newTestController(t)

	c.Apply(Form{FileType: "pdf", Tag: "work", MinSize: "1KB"})

	states := r.snapshot()
	if len(states) != 1 {
		t.Fatalf("publish count = %d, want 1 atomic publish", len(states))
	}
	s := states[0]
	if s.FileType != "pdf" || s.Tag != "work" || s.MinSize == nil || *s.MinSize != 1024 {
		t.Fatalf("published state = %#v, want all three fields applied together", s)
	}
}

func TestController_MalformedInputIsDroppedSilently(t *testing.T) {
	c, _ := newTestController(t)

	c.Apply(Form{MinSize: "1024", StartDate: "2024-01-15"})
	c.Apply(Form{MinSize: "not a number", StartDate: "15/01/2024"})

	s := c.Current()
	if s.MinSize == nil || *s.MinSize != 1024 {
		t.Fatalf("MinSize = %v, want previous value 1024 to survive garbage input", s.MinSize)
	}
	if s.StartDate == nil || s.StartDate.Format("2006-01-02") != "2024-01-15" {
		t.Fatalf("StartDate = %v, want previous value to survive garbage input", s.StartDate)
	}
}

func TestController_EmptyFieldClearsItsFilter(t *testing.T) {
	c, _ := newTestController(t)

	c.Apply(Form{FileType: "pdf", MinSize: "1024"})
	c.Apply(Form{FileType: "", MinSize: ""})

	s := c.Current()
	if s.FileType != "" || s.MinSize != nil {
		t.Fatalf("state = %#v, want cleared type and size", s)
	}
}

func TestController_ClearDimensionClearsEveryField(t *testing.T) {
	c, r := newTestController(t)

	c.Apply(Form{MinSize: "1024", MaxSize: "4096"})
	c.ClearDimension(DimSize)

	s := c.Current()
	if s.MinSize != nil || s.MaxSize != nil {
		t.Fatalf("size bounds = (%v, %v), want both cleared by one chip", s.MinSize, s.MaxSize)
	}
	if got := len(r.snapshot()); got != 2 {
		t.Fatalf("publish count = %d, want 2", got)
	}
}

func TestController_SearchIsDebouncedToLastValue(t *testing.T) {
	c, r := newTestController(t)

	c.SetSearch("a")
	time.Sleep(testQuiet / 3)
	c.SetSearch("ab")
	time.Sleep(testQuiet / 2)
	c.SetSearch("abc")
	time.Sleep(3 * testQuiet)

	states := r.snapshot()
	if len(states) != 1 {
		t.Fatalf("publish count = %d, want 1 debounced publish", len(states))
	}
	if states[0].Search != "abc" {
		t.Fatalf("Search = %q, want final burst value abc", states[0].Search)
	}
}

func TestController_ClearSearchCancelsPendingEmission(t *testing.T) {
	c, r := newTestController(t)

	c.SetSearch("pending")
	c.ClearSearch()
	time.Sleep(3 * testQuiet)

	states := r.snapshot()
	if len(states) != 1 {
		t.Fatalf("publish count = %d, want only the clear publish", len(states))
	}
	if states[0].Search != "" {
		t.Fatalf("Search = %q, want empty", states[0].Search)
	}
}

func TestController_SearchCommitPreservesAppliedFilters(t *testing.T) {
	c, _ := newTestController(t)

	c.Apply(Form{FileType: "pdf"})
	c.SetSearch("report")
	time.Sleep(3 * testQuiet)

	s := c.Current()
	if s.Search != "report" || s.FileType != "pdf" {
		t.Fatalf("state = %#v, want search and type both set", s)
	}
}

func TestController_FilterEditsResetPage(t *testing.T) {
	c, _ := newTestController(t)

	c.SetPage(5)
	if got := c.Current().Page; got != 5 {
		t.Fatalf("Page = %d, want 5", got)
	}

	c.Apply(Form{Tag: "work"})
	if got := c.Current().Page; got != 0 {
		t.Fatalf("Page after filter edit = %d, want reset", got)
	}
}

func TestParseSize(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"1024", 1024, true},
		{"1KB", 1024, true},
		{"1 kb", 1024, true},
		{"1.5MB", 1572864, true},
		{"2GB", 2 << 30, true},
		{"10B", 10, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-5", 0, false},
		{"KB", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseSize(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseSize(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
