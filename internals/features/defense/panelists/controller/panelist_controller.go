// file: internals/features/defense/panelists/controller/panelist_controller.go
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sidangku_backend/internals/constants"
	dto "sidangku_backend/internals/features/defense/panelists/dto"
	repo "sidangku_backend/internals/features/defense/panelists/repository"
	svc "sidangku_backend/internals/features/defense/panelists/service"
	scheduleModel "sidangku_backend/internals/features/defense/schedules/model"
	userRepo "sidangku_backend/internals/features/users/users/repository"
	userService "sidangku_backend/internals/features/users/users/service"
	helper "sidangku_backend/internals/helpers"
	helperAuth "sidangku_backend/internals/helpers/auth"
)

type PanelistController struct {
	DB       *gorm.DB
	Service  *svc.PanelistService
	Validate *validator.Validate
}

func New(db *gorm.DB) *PanelistController {
	resolver := userService.NewResolverService(userRepo.New(db))
	return &PanelistController{
		DB:       db,
		Service:  svc.NewPanelistService(repo.New(db), resolver),
		Validate: validator.New(),
	}
}

/* =========================
   Helpers
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

// Store-nya relation-only, jadi keberadaan schedule dicek di sini sebelum write.
func (ctl *PanelistController) assertScheduleExists(c *fiber.Ctx, scheduleID uuid.UUID) error {
	var row scheduleModel.DefenseScheduleModel
	err := ctl.DB.WithContext(c.UserContext()).
		Select("defense_schedule_id").
		Where("defense_schedule_id = ?", scheduleID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Jadwal sidang tidak ditemukan")
	}
	return err
}

/* =========================
   Handlers
   ========================= */

// GET /defense-schedules/:id/panelists
func (ctl *PanelistController) ListBySchedule(c *fiber.Ctx) error {
	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	rows, err := ctl.Service.ListBySchedule(c.UserContext(), scheduleID)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModels(rows))
}

// GET /panelists/me: jadwal yang boleh dinilai staff login
func (ctl *PanelistController) ListMine(c *fiber.Ctx) error {
	staffID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	rows, err := ctl.Service.ListByStaff(c.UserContext(), staffID)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModels(rows))
}

// POST /defense-schedules/:id/panelists: batch assign idempotent
func (ctl *PanelistController) Assign(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("penugasan penguji"))
	}

	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var req dto.AssignPanelistsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctl.assertScheduleExists(c, scheduleID); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	res, err := ctl.Service.AssignMany(c.UserContext(), scheduleID, req.StaffIDs)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := dto.AssignPanelistsResponse{
		Created:       dto.FromModels(res.Created),
		CreatedCount:  res.CreatedCount,
		ExistingCount: res.ExistingCount,
		Errors:        res.Errors,
	}
	if len(res.Errors) > 0 {
		return helper.JsonMultiStatus(c, "Sebagian penguji gagal ditugaskan", out)
	}
	return helper.JsonCreated(c, "Penguji berhasil ditugaskan", out)
}

// DELETE /defense-schedules/:id/panelists/:staff_id: idempotent
func (ctl *PanelistController) Remove(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("penugasan penguji"))
	}

	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}
	staffID, err := parseUUIDParam(c, "staff_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "staff_id tidak valid")
	}

	n, err := ctl.Service.Remove(c.UserContext(), scheduleID, staffID)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "OK", fiber.Map{"removed_count": n})
}
