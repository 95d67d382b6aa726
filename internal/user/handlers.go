package user

import (
	"strconv"

	"github.com/aboodsamad/TravelMateV0/internal/activity"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Use(authMiddleware)

	r.Get("/profile", func(c *fiber.Ctx) error {
		profile, err := svc.GetProfile(c.Context(), currentUser(c))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return c.JSON(fiber.Map{"user": profile})
	})

	r.Put("/profile", func(c *fiber.Ctx) error {
		var req UpdateProfileRequest
		if err := c.BodyParser(&req); err != nil || req.Name == "" || req.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and email required")
		}
		profile, err := svc.UpdateProfile(c.Context(), currentUser(c), req.Name, req.Email)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"user": profile})
	})

	r.Get("/logs", func(c *fiber.Ctx) error {
		logs, err := svc.Logs(c.Context(), currentUser(c), c.QueryInt("page", 1), c.QueryInt("limit", 20))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if logs == nil {
			logs = []activity.Entry{}
		}
		return c.JSON(fiber.Map{"logs": logs})
	})

	r.Get("/liked-places", func(c *fiber.Ctx) error {
		liked, err := svc.LikedPlaces(c.Context(), currentUser(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if liked == nil {
			liked = []LikedPlace{}
		}
		return c.JSON(fiber.Map{"places": liked})
	})

	r.Post("/liked-places", func(c *fiber.Ctx) error {
		var req LikeRequest
		if err := c.BodyParser(&req); err != nil || req.PlaceID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "place_id required")
		}
		if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
			return fiber.NewError(fiber.StatusBadRequest, "rating must be between 1 and 5")
		}
		if err := svc.Like(c.Context(), currentUser(c), req.PlaceID, req.Rating); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
	})

	r.Delete("/liked-places/:id", func(c *fiber.Ctx) error {
		placeID, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid place id")
		}
		if err := svc.Unlike(c.Context(), currentUser(c), placeID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"success": true})
	})
}

func currentUser(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
