// file: internals/route/base_routes.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BaseRoutes: health check + info ringan, tanpa auth.
func BaseRoutes(public fiber.Router, db *gorm.DB) {
	public.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "up"
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "sidangku backend sehat ✅",
			"data": fiber.Map{
				"db":   dbStatus,
				"time": time.Now().UTC(),
			},
		})
	})
}
