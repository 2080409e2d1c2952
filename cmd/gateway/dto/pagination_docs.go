package dto

// PaginationPostDTO is a concrete swagger-friendly type for paginated posts response
// swagger:model PaginationPostDTO
type PaginationPostDTO struct {
	Data     []PostDTO `json:"data"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Total    int       `json:"total"`
}
