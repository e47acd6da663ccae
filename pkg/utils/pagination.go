package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ParsePage reads the page query parameter. Missing, malformed or
// non-positive values all fall back to the first page; out-of-range
// pages are clamped later, once the total is known.
func ParsePage(c *fiber.Ctx) int {
	value := c.Query("page")
	if value == "" {
		return 1
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return 1
	}
	return parsed
}

// TotalPages never reports less than one page, so an empty listing
// still renders as page 1 of 1.
func TotalPages(total int64, perPage int) int {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ClampPage snaps a past-the-end page number to the last valid page
// instead of returning an empty result or an error.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		return totalPages
	}
	return page
}
