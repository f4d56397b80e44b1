package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
)

const dateLayout = "2006-01-02"

// requireOrganization devuelve la organización del token o responde 401.
func requireOrganization(c *fiber.Ctx) (string, bool) {
	orgID := GetOrganizationID(c)
	if orgID == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "organization_id requerido"})
		return "", false
	}
	return orgID, true
}

// pageFromQuery lee limit/offset con los topes de dto.PageRequest.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	p.DefaultPage()
	return p
}

// dateRangeQuery lee from/to opcionales (YYYY-MM-DD). "to" incluye el día completo.
func dateRangeQuery(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := c.Query("from"); s != "" {
		t, perr := time.Parse(dateLayout, s)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, perr := time.Parse(dateLayout, s)
		if perr != nil {
			return nil, nil, perr
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}

// requiredDateRange exige from y to; to incluye el día completo.
func requiredDateRange(c *fiber.Ctx) (from, to time.Time, ok bool) {
	f, t, err := dateRangeQuery(c)
	if err != nil || f == nil || t == nil {
		return time.Time{}, time.Time{}, false
	}
	return *f, *t, true
}
