// file: internals/features/defense/evaluations/route/evaluation_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	evalCtl "sidangku_backend/internals/features/defense/evaluations/controller"
	middlewares "sidangku_backend/internals/middlewares"
)

// EvaluationUserRoutes: alur staff penguji (buat, nilai, submit).
func EvaluationUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := evalCtl.New(db)

	grp := user.Group("/evaluations")
	grp.Post("/", ctl.CreateOrGet)
	grp.Get("/me", ctl.ListMine)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/:id/submit", ctl.Submit)
	grp.Get("/:id/scores", ctl.ListScores)
	grp.Put("/:id/scores", ctl.UpsertScore)
	grp.Post("/:id/scores/bulk", middlewares.BulkScoreRateLimiter(), ctl.BulkUpsertScores)
	grp.Delete("/:id/scores/:criterion_id", ctl.DeleteScore)
	grp.Get("/:id/summary", ctl.Summary)
}

// EvaluationAdminRoutes: override status, lock/unlock, seeding, snapshot.
func EvaluationAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := evalCtl.New(db)

	grp := admin.Group("/evaluations")
	grp.Patch("/:id/status", ctl.SetStatus)
	grp.Post("/:id/lock", ctl.Lock)
	grp.Post("/:id/unlock", ctl.Unlock)

	sched := admin.Group("/defense-schedules/:id")
	sched.Post("/evaluations", ctl.SeedForSchedule)
	sched.Get("/evaluations", ctl.ListBySchedule)
	sched.Get("/score-snapshot", ctl.ScheduleSnapshot)
}
