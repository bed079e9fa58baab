package catalog

import "time"

// File describes a catalog entry in transport-friendly form.
type File struct {
	ID               string    `json:"id"`
	URL              string    `json:"file"`
	OriginalFilename string    `json:"original_filename"`
	FileType         string    `json:"file_type"`
	Size             int64     `json:"size"`
	UploadedAt       time.Time `json:"uploaded_at"`
	FileHash         string    `json:"file_hash"`
	ReferenceCount   int       `json:"reference_count"`
	SavedSpace       int64     `json:"saved_space"`
	Tags             []string  `json:"tags"`
	IsFavorite       bool      `json:"is_favorite"`
	ContentCategory  string    `json:"content_category"`
}

// FileListPage mirrors the paginated /files response.
type FileListPage struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []File  `json:"results"`
}

// Stats mirrors the /files/stats payload.
type Stats struct {
	UniqueFiles     int            `json:"unique_files"`
	TotalUploads    int            `json:"total_uploads"`
	DuplicationRate float64        `json:"duplication_rate"`
	Storage         StorageStats   `json:"storage"`
	FileTypes       []FileTypeStat `json:"file_types"`
}

// StorageStats breaks down actual vs deduplicated byte usage.
type StorageStats struct {
	ActualBytes       int64   `json:"actual_bytes"`
	SavedBytes        int64   `json:"saved_bytes"`
	WithoutDedupBytes int64   `json:"without_dedup_bytes"`
	Efficiency        float64 `json:"efficiency_percentage"`
}

// FileTypeStat is one row of the per-type breakdown inside Stats.
type FileTypeStat struct {
	FileType  string `json:"file_type"`
	Count     int    `json:"count"`
	TotalSize int64  `json:"total_size"`
}

// Savings mirrors /files/savings.
type Savings struct {
	TotalBytes int64 `json:"total_bytes"`
}

// UploadResult is the response to a multipart upload. Message is set by the
// server when the content was already stored and only a reference was added.
type UploadResult struct {
	File
	Message string `json:"message"`
}
