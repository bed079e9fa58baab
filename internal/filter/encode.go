package filter

import (
	"net/url"
	"strconv"
)

// dateLayout is the ISO calendar date form the catalog expects.
const dateLayout = "2006-01-02"

// Encode maps a State to its transport parameter set. It is total and
// deterministic: every set field maps to exactly one parameter, unset fields
// are omitted entirely, and equal states always produce equal values. Sizes
// are already bytes at this boundary; unit conversion happens in the
// controller's edit parser.
func Encode(s State) url.Values {
	values := url.Values{}
	if s.Search != "" {
		values.Set("search", s.Search)
	}
	if s.FileType != "" {
		values.Set("file_type", s.FileType)
	}
	if s.ContentCategory != "" {
		values.Set("content_category", s.ContentCategory)
	}
	if s.Tag != "" {
		values.Set("tag", s.Tag)
	}
	if s.Favorite != nil {
		values.Set("is_favorite", strconv.FormatBool(*s.Favorite))
	}
	// Both bounds pass through unchanged even when MinSize > MaxSize: the
	// server reports the empty result rather than the client dropping one.
	if s.MinSize != nil {
		values.Set("min_size", strconv.FormatInt(*s.MinSize, 10))
	}
	if s.MaxSize != nil {
		values.Set("max_size", strconv.FormatInt(*s.MaxSize, 10))
	}
	if s.StartDate != nil {
		values.Set("start_date", s.StartDate.Format(dateLayout))
	}
	if s.EndDate != nil {
		values.Set("end_date", s.EndDate.Format(dateLayout))
	}
	if s.DatePreset != "" {
		values.Set("date_range", string(s.DatePreset))
	}
	if s.SortKey != "" {
		values.Set("ordering", s.SortKey)
	}
	if s.Page > 0 {
		values.Set("page", strconv.Itoa(s.Page))
	}
	return values
}

// EncodedQuery returns the stable string form of the encoded state.
// url.Values.Encode sorts by parameter name, so two equal states always
// yield the same string; it doubles as the file-list cache key.
func EncodedQuery(s State) string {
	return Encode(s).Encode()
}
