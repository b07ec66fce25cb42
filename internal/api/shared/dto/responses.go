package dto

// Pagination describes the page of a list response
type Pagination struct {
	Total   uint64 `json:"total"`
	Limit   int    `json:"limit"`
	Offset  uint64 `json:"offset"`
	HasMore bool   `json:"has_more"`
}

// NewPagination builds the pagination block for a page starting at offset
func NewPagination(total uint64, limit int, offset uint64) Pagination {
	return Pagination{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+uint64(limit) < total,
	}
}

// MessageResponse is returned by endpoints without a resource body
type MessageResponse struct {
	Message string `json:"message"`
}
