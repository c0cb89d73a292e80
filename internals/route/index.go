// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sidangku_backend/internals/configs"
	authMw "sidangku_backend/internals/middlewares/auth"
	"sidangku_backend/internals/route/details"
)

// SetupRoutes memasang tiga grup:
//
//	/api/p: publik (health)
//	/api/u: staff login (JWT)
//	/api/a: admin (JWT; cek role per handler)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	public := api.Group("/p")
	BaseRoutes(public, db)

	jwtGuard := authMw.AuthJWT(authMw.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	user := api.Group("/u", jwtGuard)
	details.DefenseUserRoutes(user, db)

	admin := api.Group("/a", jwtGuard)
	details.UserAdminRoutes(admin, db)
	details.DefenseAdminRoutes(admin, db)
}
