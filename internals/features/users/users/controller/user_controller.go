// file: internals/features/users/users/controller/user_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sidangku_backend/internals/constants"
	dto "sidangku_backend/internals/features/users/users/dto"
	model "sidangku_backend/internals/features/users/users/model"
	repo "sidangku_backend/internals/features/users/users/repository"
	helper "sidangku_backend/internals/helpers"
	helperAuth "sidangku_backend/internals/helpers/auth"
)

type UserController struct {
	DB       *gorm.DB
	Repo     *repo.UserRepository
	Validate *validator.Validate
}

func New(db *gorm.DB) *UserController {
	return &UserController{
		DB:       db,
		Repo:     repo.New(db),
		Validate: validator.New(),
	}
}

// GET /users?role=staff&q=...
// Dipakai admin untuk picker calon penguji.
func (ctl *UserController) List(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("daftar user"))
	}

	role := strings.ToLower(strings.TrimSpace(c.Query("role")))
	q := strings.TrimSpace(c.Query("q"))
	paging := helper.ResolvePaging(c, 20, 100)

	rows, total, err := ctl.Repo.ListByRole(c.UserContext(), role, q, paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i]))
	}
	return helper.JsonList(c, "OK", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /users/:id
func (ctl *UserController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	u, err := ctl.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if u == nil {
		return helper.JsonError(c, http.StatusNotFound, "User tidak ditemukan")
	}
	return helper.JsonOK(c, "OK", dto.FromModel(u))
}

// POST /users/staff: buat akun staff (admin only)
func (ctl *UserController) CreateStaff(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("buat akun staff"))
	}

	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	row := model.UserModel{
		UserUserName: strings.TrimSpace(req.UserUserName),
		UserFullName: req.UserFullName,
		UserEmail:    strings.ToLower(strings.TrimSpace(req.UserEmail)),
		UserPassword: string(hash),
		UserRole:     constants.RoleStaff,
		UserIsActive: true,
	}
	if err := ctl.Repo.Create(c.UserContext(), &row); err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, http.StatusConflict, "Username atau email sudah terdaftar")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Akun staff berhasil dibuat", dto.FromModel(&row))
}

// --- PG error mapping (cukup unique saja di sini) ---

type pgSQLErr interface {
	SQLState() string
	Error() string
}

func isUniqueViolation(err error) bool {
	var pgErr pgSQLErr
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}
