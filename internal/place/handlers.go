package place

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		q := ListQuery{
			Page:          c.QueryInt("page", 1),
			Limit:         c.QueryInt("limit", 10),
			Country:       c.Query("country"),
			Category:      c.Query("category"),
			Accommodation: c.Query("accommodation_available"),
			Search:        c.Query("search"),
			SortBy:        c.Query("sortBy"),
			SortOrder:     c.Query("sortOrder"),
			TopOnly:       c.QueryBool("topOnly"),
		}
		page, err := svc.List(c.Context(), q)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		data := page.Data
		if data == nil {
			data = []Place{}
		}
		return c.JSON(fiber.Map{
			"data": data,
			"pagination": fiber.Map{
				"page":         page.Page,
				"totalPages":   page.TotalPages,
				"totalRecords": page.TotalRecords,
			},
		})
	})

	r.Get("/filters", func(c *fiber.Ctx) error {
		opts, err := svc.Filters(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"filters": opts})
	})

	r.Get("/stats", func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.Context(), c.Query("country"), c.Query("category"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"stats": stats})
	})
}
