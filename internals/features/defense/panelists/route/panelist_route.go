// file: internals/features/defense/panelists/route/panelist_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	panelistCtl "sidangku_backend/internals/features/defense/panelists/controller"
)

// PanelistAdminRoutes: kelola penugasan penguji per jadwal.
func PanelistAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := panelistCtl.New(db)

	grp := admin.Group("/defense-schedules/:id/panelists")
	grp.Get("/", ctl.ListBySchedule)
	grp.Post("/", ctl.Assign)
	grp.Delete("/:staff_id", ctl.Remove)
}

// PanelistUserRoutes: staff melihat penugasannya sendiri.
func PanelistUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := panelistCtl.New(db)
	user.Get("/panelists/me", ctl.ListMine)
}
