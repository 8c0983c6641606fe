package rest

import (
	"fmt"
	"strconv"

	"blogapi/internal/service"

	"github.com/gin-gonic/gin"
)

func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", service.ErrInvalidRequest, name)
	}
	return id, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return fmt.Errorf("%w: malformed body: %v", service.ErrInvalidRequest, err)
	}
	return nil
}
