// file: internals/route/details/defense_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	evalRoute "sidangku_backend/internals/features/defense/evaluations/route"
	panelistRoute "sidangku_backend/internals/features/defense/panelists/route"
	rubricRoute "sidangku_backend/internals/features/defense/rubrics/route"
	scheduleRoute "sidangku_backend/internals/features/defense/schedules/route"
)

// DefenseUserRoutes: grup /api/u: staff penguji.
func DefenseUserRoutes(user fiber.Router, db *gorm.DB) {
	scheduleRoute.ScheduleUserRoutes(user, db)
	panelistRoute.PanelistUserRoutes(user, db)
	rubricRoute.RubricUserRoutes(user, db)
	evalRoute.EvaluationUserRoutes(user, db)
}

// DefenseAdminRoutes: grup /api/a: koordinator sidang.
func DefenseAdminRoutes(admin fiber.Router, db *gorm.DB) {
	scheduleRoute.ScheduleAdminRoutes(admin, db)
	panelistRoute.PanelistAdminRoutes(admin, db)
	rubricRoute.RubricAdminRoutes(admin, db)
	evalRoute.EvaluationAdminRoutes(admin, db)
}
