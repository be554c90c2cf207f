package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-portal-api/internal/filter"
	"github.com/noah-isme/edu-portal-api/internal/models"
	appErrors "github.com/noah-isme/edu-portal-api/pkg/errors"
)

const maxPageSize = 100

// criteriaFromQuery reads search, category, country, tag and featured.
func criteriaFromQuery(c *gin.Context) (filter.Criteria, error) {
	criteria := filter.Criteria{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Country:  c.Query("country"),
		Tag:      c.Query("tag"),
	}
	if raw := strings.TrimSpace(c.Query("featured")); raw != "" && !strings.EqualFold(raw, "all") {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filter.Criteria{}, appErrors.Validation("featured must be a boolean", "featured")
		}
		criteria.Featured = &featured
	}
	return criteria, nil
}

// paginate slices items when page or limit is given. Without either the
// whole list is returned and the pagination block is omitted.
func paginate[T any](c *gin.Context, items []T) ([]T, *models.Pagination, error) {
	rawPage, rawLimit := c.Query("page"), c.Query("limit")
	if rawPage == "" && rawLimit == "" {
		return items, nil, nil
	}

	page, limit := 1, 20
	var fields []string
	if rawPage != "" {
		v, err := strconv.Atoi(rawPage)
		if err != nil || v < 1 {
			fields = append(fields, "page")
		} else {
			page = v
		}
	}
	if rawLimit != "" {
		v, err := strconv.Atoi(rawLimit)
		if err != nil || v < 1 || v > maxPageSize {
			fields = append(fields, "limit")
		} else {
			limit = v
		}
	}
	if len(fields) > 0 {
		return nil, nil, appErrors.Validation("invalid pagination parameters", fields...)
	}

	total := len(items)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], &models.Pagination{Page: page, PageSize: limit, TotalCount: total}, nil
}
