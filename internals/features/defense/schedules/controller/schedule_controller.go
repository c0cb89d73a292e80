// file: internals/features/defense/schedules/controller/schedule_controller.go
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sidangku_backend/internals/constants"
	evalModel "sidangku_backend/internals/features/defense/evaluations/model"
	panelistModel "sidangku_backend/internals/features/defense/panelists/model"
	dto "sidangku_backend/internals/features/defense/schedules/dto"
	model "sidangku_backend/internals/features/defense/schedules/model"
	helper "sidangku_backend/internals/helpers"
	helperAuth "sidangku_backend/internals/helpers/auth"
)

type ScheduleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB) *ScheduleController {
	return &ScheduleController{
		DB:       db,
		Validate: validator.New(),
	}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

func (ctl *ScheduleController) find(c *fiber.Ctx, id uuid.UUID) (*model.DefenseScheduleModel, error) {
	var row model.DefenseScheduleModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("defense_schedule_id = ?", id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

/* =========================
   Read
   ========================= */

// GET /defense-schedules?status=&group_id=&from=&to=
func (ctl *ScheduleController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.DefenseScheduleModel{})

	if status := strings.ToLower(strings.TrimSpace(c.Query("status"))); status != "" {
		tx = tx.Where("defense_schedule_status = ?", status)
	}
	if groupStr := strings.TrimSpace(c.Query("group_id")); groupStr != "" {
		groupID, err := uuid.Parse(groupStr)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "group_id tidak valid")
		}
		tx = tx.Where("defense_schedule_group_id = ?", groupID)
	}
	if from := strings.TrimSpace(c.Query("from")); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "from harus RFC3339")
		}
		tx = tx.Where("defense_schedule_scheduled_at >= ?", t)
	}
	if to := strings.TrimSpace(c.Query("to")); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "to harus RFC3339")
		}
		tx = tx.Where("defense_schedule_scheduled_at <= ?", t)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var rows []model.DefenseScheduleModel
	if err := tx.Order("defense_schedule_scheduled_at ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /defense-schedules/:id
func (ctl *ScheduleController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}
	row, err := ctl.find(c, id)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if row == nil {
		return helper.JsonError(c, http.StatusNotFound, "Jadwal sidang tidak ditemukan")
	}
	return helper.JsonOK(c, "OK", dto.FromModel(row))
}

// GET /defense-schedules/:id/audits: jejak perubahan
func (ctl *ScheduleController) ListAudits(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}
	var rows []model.DefenseScheduleAuditModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("defense_schedule_audit_schedule_id = ?", id).
		Order("defense_schedule_audit_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.AuditsFromModels(rows))
}

/* =========================
   Write (admin)
   ========================= */

// POST /defense-schedules
func (ctl *ScheduleController) Create(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("kelola jadwal sidang"))
	}
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "group_id tidak valid")
	}

	row := model.DefenseScheduleModel{
		DefenseScheduleGroupID:         groupID,
		DefenseScheduleGroupTitleCache: req.GroupTitle,
		DefenseScheduleScheduledAt:     req.ScheduledAt,
		DefenseScheduleRoom:            req.Room,
		DefenseScheduleStatus:          model.ScheduleScheduled,
		DefenseScheduleRequiredDocs:    req.RequiredDocs,
		DefenseScheduleCreatedBy:       actorID,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Jadwal sidang dibuat", dto.FromModel(&row))
}

// PATCH /defense-schedules/:id: wajib reason; perubahan + audit satu transaksi
func (ctl *ScheduleController) Update(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("kelola jadwal sidang"))
	}
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctl.find(c, id)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if row == nil {
		return helper.JsonError(c, http.StatusNotFound, "Jadwal sidang tidak ditemukan")
	}

	changes := map[string]any{}
	if req.GroupTitle != nil {
		changes["group_title"] = map[string]any{"old": row.DefenseScheduleGroupTitleCache, "new": req.GroupTitle}
		row.DefenseScheduleGroupTitleCache = req.GroupTitle
	}
	if req.ScheduledAt != nil {
		changes["scheduled_at"] = map[string]any{"old": row.DefenseScheduleScheduledAt, "new": req.ScheduledAt}
		row.DefenseScheduleScheduledAt = *req.ScheduledAt
	}
	if req.Room != nil {
		changes["room"] = map[string]any{"old": row.DefenseScheduleRoom, "new": req.Room}
		row.DefenseScheduleRoom = req.Room
	}
	if req.Status != nil {
		changes["status"] = map[string]any{"old": row.DefenseScheduleStatus, "new": *req.Status}
		row.DefenseScheduleStatus = model.ScheduleStatusEnum(*req.Status)
	}
	if req.RequiredDocs != nil {
		changes["required_docs"] = map[string]any{"old": row.DefenseScheduleRequiredDocs, "new": *req.RequiredDocs}
		row.DefenseScheduleRequiredDocs = *req.RequiredDocs
	}
	if len(changes) == 0 {
		return helper.JsonError(c, http.StatusBadRequest, "Tidak ada field yang diubah")
	}

	changesJSON, err := sonic.Marshal(changes)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(row).Error; err != nil {
			return err
		}
		audit := model.DefenseScheduleAuditModel{
			DefenseScheduleAuditScheduleID: row.DefenseScheduleID,
			DefenseScheduleAuditActorID:    actorID,
			DefenseScheduleAuditReason:     strings.TrimSpace(req.Reason),
			DefenseScheduleAuditChanges:    changesJSON,
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Jadwal sidang diperbarui", dto.FromModel(row))
}

// DELETE /defense-schedules/:id: cascade dalam satu transaksi:
// penugasan penguji dihapus, evaluation di-soft-delete, nilai ikut dihapus.
func (ctl *ScheduleController) Delete(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("kelola jadwal sidang"))
	}
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var req dto.DeleteScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid (reason wajib)")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctl.find(c, id)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if row == nil {
		return helper.JsonError(c, http.StatusNotFound, "Jadwal sidang tidak ditemukan")
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		// nilai milik evaluation jadwal ini
		if err := tx.Where("evaluation_score_evaluation_id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).
				Model(&evalModel.EvaluationModel{}).
				Select("evaluation_id").
				Where("evaluation_schedule_id = ?", id),
		).Delete(&evalModel.EvaluationScoreModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("evaluation_schedule_id = ?", id).
			Delete(&evalModel.EvaluationModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("schedule_panelist_schedule_id = ?", id).
			Delete(&panelistModel.SchedulePanelistModel{}).Error; err != nil {
			return err
		}
		audit := model.DefenseScheduleAuditModel{
			DefenseScheduleAuditScheduleID: id,
			DefenseScheduleAuditActorID:    actorID,
			DefenseScheduleAuditReason:     strings.TrimSpace(req.Reason),
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}
		return tx.Delete(row).Error
	})
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Jadwal sidang dihapus", fiber.Map{"schedule_id": id})
}
