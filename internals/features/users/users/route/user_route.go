// file: internals/features/users/users/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userCtl "sidangku_backend/internals/features/users/users/controller"
)

// UserAdminRoutes: endpoint user untuk admin (picker + pembuatan akun staff).
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := userCtl.New(db)

	grp := admin.Group("/users")
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/staff", ctl.CreateStaff)
}
