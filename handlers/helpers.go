package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// professorID reads the authenticated identity set by the auth middleware.
// Zero means the request came in on a public route.
func professorID(c echo.Context) uint {
	id, _ := c.Get("professor_id").(uint)
	return id
}

func uintParam(c echo.Context, name string) (uint, error) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": "Invalid id."})
	}
	return uint(n), nil
}

// internalErr shields storage failures: the cause is logged server-side,
// the caller gets the generic message plus an error detail. Domain errors
// raised inside a transaction pass through unchanged so the rollback
// still happens.
func internalErr(err error, msg string) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	log.Printf("internal error: %v", err)
	return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{
		"message": msg,
		"error":   err.Error(),
	})
}

// storeErr maps a transaction failure. A unique-index violation caught by
// the storage backstop (two concurrent calls both passing the duplicate
// check) surfaces as the same conflict the check itself reports, not as a
// raw storage error.
func storeErr(err error, conflictMsg, internalMsg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"message": conflictMsg})
	}
	return internalErr(err, internalMsg)
}
