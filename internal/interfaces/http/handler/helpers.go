package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/interfaces/http/dto"
)

// parseIDParam extracts and validates the :id path parameter.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// bindListFilter binds pagination query parameters and converts them
// into a repository filter. Extra key/value filters can be layered on
// by the caller through the returned filter's Filters map.
func bindListFilter(c *gin.Context) (shared.Filter, error) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.OrderBy = req.OrderBy
	filter.OrderDir = req.OrderDir
	filter.Search = req.Search
	return filter, nil
}

// addFilter sets a key/value constraint on a filter, allocating the
// map on first use.
func addFilter(filter *shared.Filter, key string, value interface{}) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters[key] = value
}
