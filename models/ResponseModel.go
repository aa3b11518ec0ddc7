package models

// Swagger / API docs: common request and response models referenced by handler annotations

// ErrorResponse is used in @Failure for error responses
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid input"`
	Details string `json:"details,omitempty" example:""`
}

// FieldErrorResponse is returned with 422 when entered quantities do not validate.
// Keys of Errors are field names, prefixed with components[i]. for batch submissions.
type FieldErrorResponse struct {
	Error  string            `json:"error" example:"Milestone quantities do not reconcile"`
	Errors map[string]string `json:"errors"`
}

// PaginationInfo describes a page of a list response
type PaginationInfo struct {
	CurrentPage  int  `json:"current_page"`
	PageSize     int  `json:"page_size"`
	TotalRecords int  `json:"total_records"`
	TotalPages   int  `json:"total_pages"`
	HasNext      bool `json:"has_next"`
	HasPrev      bool `json:"has_prev"`
}

// NewPaginationInfo computes page metadata for a total record count.
func NewPaginationInfo(page, pageSize, total int) PaginationInfo {
	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	return PaginationInfo{
		CurrentPage:  page,
		PageSize:     pageSize,
		TotalRecords: total,
		TotalPages:   pages,
		HasNext:      page < pages,
		HasPrev:      page > 1,
	}
}

// LoginRequest is used in @Param for login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"password"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIs..."`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int    `json:"expires_in" example:"900"`
}

// CreatedResponse is returned after a successful insert
type CreatedResponse struct {
	Message string `json:"message" example:"Work package created successfully"`
	ID      uint   `json:"id" example:"1"`
	IDs     []uint `json:"ids,omitempty"`
}
