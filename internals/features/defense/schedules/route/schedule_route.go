// file: internals/features/defense/schedules/route/schedule_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scheduleCtl "sidangku_backend/internals/features/defense/schedules/controller"
)

// ScheduleUserRoutes: staff penguji melihat jadwal.
func ScheduleUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := scheduleCtl.New(db)

	grp := user.Group("/defense-schedules")
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
}

// ScheduleAdminRoutes: CRUD + jejak audit.
func ScheduleAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := scheduleCtl.New(db)

	grp := admin.Group("/defense-schedules")
	grp.Get("/", ctl.List)
	grp.Post("/", ctl.Create)
	grp.Get("/:id", ctl.GetByID)
	grp.Patch("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
	grp.Get("/:id/audits", ctl.ListAudits)
}
