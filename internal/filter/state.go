// Package filter owns the catalog query description: the immutable State
// value, its transport encoding, and the controller that is the single
// writer of new State values.
package filter

import "time"

// DefaultSortKey orders the catalog newest-first, matching the service's
// default ordering.
const DefaultSortKey = "-uploaded_at"

// Preset names a relative date range understood by the catalog service.
type Preset string

// Known date range presets.
const (
	PresetToday     Preset = "today"
	PresetYesterday Preset = "yesterday"
	PresetThisWeek  Preset = "this_week"
	PresetThisMonth Preset = "this_month"
	PresetThisYear  Preset = "this_year"
)

// ParsePreset returns the preset for value, or "" when value is not a known
// preset name.
func ParsePreset(value string) Preset {
	switch Preset(value) {
	case PresetToday, PresetYesterday, PresetThisWeek, PresetThisMonth, PresetThisYear:
		return Preset(value)
	}
	return ""
}

// State is an immutable description of the active catalog query. Each edit
// accepted by the Controller produces a new State; a State value is never
// mutated in place.
type State struct {
	Search          string
	FileType        string
	ContentCategory string
	Tag             string
	Favorite        *bool
	MinSize         *int64
	MaxSize         *int64
	StartDate       *time.Time
	EndDate         *time.Time
	DatePreset      Preset
	SortKey         string
	Page            int
}

// DefaultState returns the state the controller starts from and returns to
// on Reset.
func DefaultState() State {
	return State{SortKey: DefaultSortKey}
}

// Dimension names a logical filter axis. A dimension may be backed by more
// than one State field; clearing a dimension clears all of them.
type Dimension int

// Filter dimensions. Search and sort order are not dimensions: they do not
// contribute to the active filter count.
const (
	DimFileType Dimension = iota
	DimCategory
	DimTag
	DimFavorite
	DimSize
	DimDate
)

// ActiveFilterCount reports how many filter dimensions are non-default.
// MinSize and MaxSize are one dimension; StartDate, EndDate and DatePreset
// are one dimension. Search and SortKey are excluded.
func (s State) ActiveFilterCount() int {
	count := 0
	if s.FileType != "" {
		count++
	}
	if s.ContentCategory != "" {
		count++
	}
	if s.Tag != "" {
		count++
	}
	if s.Favorite != nil {
		count++
	}
	if s.MinSize != nil || s.MaxSize != nil {
		count++
	}
	if s.StartDate != nil || s.EndDate != nil || s.DatePreset != "" {
		count++
	}
	return count
}

// HasDimension reports whether any field of the dimension is set.
func (s State) HasDimension(dim Dimension) bool {
	switch dim {
	case DimFileType:
		return s.FileType != ""
	case DimCategory:
		return s.ContentCategory != ""
	case DimTag:
		return s.Tag != ""
	case DimFavorite:
		return s.Favorite != nil
	case DimSize:
		return s.MinSize != nil || s.MaxSize != nil
	case DimDate:
		return s.StartDate != nil || s.EndDate != nil || s.DatePreset != ""
	}
	return false
}

// clearDimension zeroes every field belonging to dim on the copy s.
func (s State) clearDimension(dim Dimension) State {
	switch dim {
	case DimFileType:
		s.FileType = ""
	case DimCategory:
		s.ContentCategory = ""
	case DimTag:
		s.Tag = ""
	case DimFavorite:
		s.Favorite = nil
	case DimSize:
		s.MinSize = nil
		s.MaxSize = nil
	case DimDate:
		s.StartDate = nil
		s.EndDate = nil
		s.DatePreset = ""
	}
	return s
}
