package filter

import "testing"

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	if s.SortKey != DefaultSortKey {
		t.Fatalf("SortKey = %q, want %q", s.SortKey, DefaultSortKey)
	}
	if s.ActiveFilterCount() != 0 {
		t.Fatalf("ActiveFilterCount(default) = %d, want 0", s.ActiveFilterCount())
	}
}

func TestActiveFilterCount_SizeFieldsShareOneDimension(t *testing.T) {
	s := DefaultState()
	s.MinSize = int64Ptr(1024)
	if got := s.ActiveFilterCount(); got != 1 {
		t.Fatalf("count with min size = %d, want 1", got)
	}

	s.MaxSize = int64Ptr(2048)
	if got := s.ActiveFilterCount(); got != 1 {
		t.Fatalf("count with both bounds = %d, want 1 (same dimension)", got)
	}

	s.FileType = "pdf"
	if got := s.ActiveFilterCount(); got != 2 {
		t.Fatalf("count with size + type = %d, want 2", got)
	}
}

func TestActiveFilterCount_DateFieldsShareOneDimension(t *testing.T) {
	s := DefaultState()
	s.StartDate = datePtr("2024-01-01")
	s.EndDate = datePtr("2024-06-30")
	if got := s.ActiveFilterCount(); got != 1 {
		t.Fatalf("count with date range = %d, want 1", got)
	}

	s.StartDate, s.EndDate = nil, nil
	s.DatePreset = PresetThisMonth
	if got := s.ActiveFilterCount(); got != 1 {
		t.Fatalf("count with preset = %d, want 1", got)
	}
}

func TestActiveFilterCount_SearchAndSortAreNotFilters(t *testing.T) {
	s := DefaultState()
	s.Search = "budget"
	s.SortKey = "size"
	if got := s.ActiveFilterCount(); got != 0 {
		t.Fatalf("count with only search+sort = %d, want 0", got)
	}
}

func TestParsePreset(t *testing.T) {
	for _, valid := range []string{"today", "yesterday", "this_week", "this_month", "this_year"} {
		if got := ParsePreset(valid); string(got) != valid {
			t.Fatalf("ParsePreset(%q) = %q, want %q", valid, got, valid)
		}
	}
	if got := ParsePreset("fortnight"); got != "" {
		t.Fatalf("ParsePreset(fortnight) = %q, want empty", got)
	}
}

func TestHasDimension(t *testing.T) {
	s := DefaultState()
	s.Favorite = boolPtr(false)
	if !s.HasDimension(DimFavorite) {
		t.Fatalf("HasDimension(DimFavorite) = false, want true for explicit false")
	}
	if s.HasDimension(DimSize) {
		t.Fatalf("HasDimension(DimSize) = true, want false")
	}
}
