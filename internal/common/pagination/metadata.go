package pagination

// Metadata contains pagination metadata included in API responses.
type Metadata struct {
	Total      int64 `json:"total"`       // Items across all pages
	Page       int   `json:"page"`        // 1-based
	Limit      int   `json:"limit"`       // Items per page
	TotalPages int   `json:"total_pages"` // At least 1
}

// NewMetadata computes TotalPages for the given total.
func NewMetadata(params Params, total int64) Metadata {
	return Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: CalculateTotalPages(total, params.Limit),
	}
}
