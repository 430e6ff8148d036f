package types

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PaginatedResponse contains data with pagination metadata
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		PageSize   int `json:"pageSize"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

// PaginationHelper provides utilities for working with pagination
type PaginationHelper struct {
	Page     int
	PageSize int
	Offset   int
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NewPaginationHelper creates a new PaginationHelper instance
func NewPaginationHelper(page, pageSize int) *PaginationHelper {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return &PaginationHelper{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// BuildResponse creates a standardized response with pagination
func (p *PaginationHelper) BuildResponse(data interface{}, total int) PaginatedResponse {
	totalPages := (total + p.PageSize - 1) / p.PageSize

	resp := PaginatedResponse{Data: data}
	resp.Pagination.Page = p.Page
	resp.Pagination.PageSize = p.PageSize
	resp.Pagination.Total = total
	resp.Pagination.TotalPages = totalPages
	return resp
}

// ParsePaginationParams extracts pagination parameters from gin.Context
func ParsePaginationParams(c *gin.Context) *PaginationHelper {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	return NewPaginationHelper(page, pageSize)
}
