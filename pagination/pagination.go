package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type Params struct {
	Page     int
	PageSize int
}

// Parse reads page/page_size query parameters. page_size falls back to
// defaultSize and is capped at maxSize.
func Parse(c *gin.Context, defaultSize, maxSize int) Params {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(c.Query("page_size"))
	if err != nil || size < 1 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}

	return Params{Page: page, PageSize: size}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}
