// file: internals/features/defense/rubrics/route/rubric_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rubricCtl "sidangku_backend/internals/features/defense/rubrics/controller"
)

// RubricUserRoutes: read-only untuk staff penguji.
func RubricUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := rubricCtl.New(db)

	grp := user.Group("/rubric-templates")
	grp.Get("/active", ctl.GetActive)
	grp.Get("/:id/criteria", ctl.ListCriteria)
}

// RubricAdminRoutes: kelola template dan kriteria.
func RubricAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := rubricCtl.New(db)

	grp := admin.Group("/rubric-templates")
	grp.Get("/", ctl.ListTemplates)
	grp.Post("/", ctl.CreateTemplate)
	grp.Post("/:id/activate", ctl.Activate)
	grp.Get("/:id/criteria", ctl.ListCriteria)
}
