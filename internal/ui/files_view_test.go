package ui

import (
	"testing"

	"github.com/karandattani71/vaultview/internal/filter"
)

func TestChips_OneChipPerDimension(t *testing.T) {
	min := int64(1024)
	max := int64(4096)
	fav := true

	m := &Model{state: filter.State{
		FileType:   "pdf",
		Favorite:   &fav,
		MinSize:    &min,
		MaxSize:    &max,
		DatePreset: filter.PresetThisWeek,
		SortKey:    filter.DefaultSortKey,
		Search:     "report",
	}}

	chips := m.chips()
	if len(chips) != 4 {
		t.Fatalf("chip count = %d, want 4 (type, favorite, size, date)", len(chips))
	}
	// Both size bounds collapse into one chip; search never gets a chip.
	wantDims := []filter.Dimension{filter.DimFileType, filter.DimFavorite, filter.DimSize, filter.DimDate}
	for i, want := range wantDims {
		if chips[i].dim != want {
			t.Fatalf("chip %d dimension = %v, want %v", i, chips[i].dim, want)
		}
	}
	if chips[2].label != "size:1.0 KB–4.0 KB" {
		t.Fatalf("size chip label = %q, want combined bounds", chips[2].label)
	}
}

func TestChips_DefaultStateHasNone(t *testing.T) {
	m := &Model{state: filter.DefaultState()}
	if chips := m.chips(); len(chips) != 0 {
		t.Fatalf("chips(default) = %v, want none", chips)
	}
}

func TestFilterPanel_LoadAndFormRoundTrip(t *testing.T) {
	min := int64(2048)
	s := filter.DefaultState()
	s.FileType = "image/png"
	s.MinSize = &min
	s.DatePreset = filter.PresetToday

	p := newFilterPanel()
	p.load(s)

	form := p.form()
	if form.FileType != "image/png" {
		t.Fatalf("FileType = %q, want image/png", form.FileType)
	}
	if form.MinSize != "2048" {
		t.Fatalf("MinSize = %q, want 2048", form.MinSize)
	}
	if form.DatePreset != "today" {
		t.Fatalf("DatePreset = %q, want today", form.DatePreset)
	}
	if form.SortKey != filter.DefaultSortKey {
		t.Fatalf("SortKey = %q, want default", form.SortKey)
	}
}
