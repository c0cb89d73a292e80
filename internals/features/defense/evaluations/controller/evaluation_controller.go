// file: internals/features/defense/evaluations/controller/evaluation_controller.go
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
	dto "sidangku_backend/internals/features/defense/evaluations/dto"
	model "sidangku_backend/internals/features/defense/evaluations/model"
	repo "sidangku_backend/internals/features/defense/evaluations/repository"
	svc "sidangku_backend/internals/features/defense/evaluations/service"
	panelistRepo "sidangku_backend/internals/features/defense/panelists/repository"
	rubricRepo "sidangku_backend/internals/features/defense/rubrics/repository"
	helper "sidangku_backend/internals/helpers"
	helperAuth "sidangku_backend/internals/helpers/auth"
)

type EvaluationController struct {
	DB        *gorm.DB
	Lifecycle *svc.LifecycleService
	Validate  *validator.Validate
}

func New(db *gorm.DB) *EvaluationController {
	evals := repo.NewEvaluation(db)
	scoring := svc.NewScoringService(repo.NewScore(db))
	lifecycle := svc.NewLifecycleService(
		evals,
		scoring,
		panelistRepo.New(db),
		rubricRepo.New(db),
		evals,
	)
	return &EvaluationController{
		DB:        db,
		Lifecycle: lifecycle,
		Validate:  validator.New(),
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

// mapServiceErr memetakan sentinel service ke kode HTTP + envelope standar.
func mapServiceErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, svc.ErrEvaluationNotFound):
		return helper.JsonError(c, http.StatusNotFound, "Evaluation tidak ditemukan")
	case errors.Is(err, svc.ErrScheduleNotFound):
		return helper.JsonError(c, http.StatusNotFound, "Jadwal sidang tidak ditemukan")
	case errors.Is(err, svc.ErrEvaluationLocked):
		return helper.JsonError(c, http.StatusLocked, "Evaluation terkunci; minta admin membuka dulu")
	case errors.Is(err, svc.ErrInvalidStatus):
		return helper.JsonError(c, http.StatusBadRequest, "Status tidak dikenal")
	case errors.Is(err, svc.ErrScoreNotFinite):
		return helper.JsonError(c, http.StatusBadRequest, "Score harus berupa angka finite")
	case svc.IsForeignKeyViolation(err):
		return helper.JsonError(c, http.StatusBadRequest, "Referensi tidak ditemukan (schedule/criterion)")
	}
	return helper.JsonError(c, http.StatusInternalServerError, err.Error())
}

// evaluatorGuard: staff hanya boleh menyentuh evaluation miliknya; admin bebas.
func (ctl *EvaluationController) evaluatorGuard(c *fiber.Ctx, row *model.EvaluationModel) error {
	if helperAuth.IsAdmin(c) {
		return nil
	}
	uid, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	if row.EvaluationEvaluatorID != uid {
		return helper.JsonError(c, http.StatusForbidden, "Evaluation ini bukan milik Anda")
	}
	return nil
}

func (ctl *EvaluationController) loadGuarded(c *fiber.Ctx) (*model.EvaluationModel, error) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil, helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}
	row, err := ctl.Lifecycle.Get(c.UserContext(), id)
	if err != nil {
		return nil, mapServiceErr(c, err)
	}
	if err := ctl.evaluatorGuard(c, row); err != nil {
		return nil, err
	}
	return row, nil
}

/* =========================
   Staff handlers
   ========================= */

// POST /evaluations: buat-atau-ambil evaluation milik staff login. Idempotent.
func (ctl *EvaluationController) CreateOrGet(c *fiber.Ctx) error {
	evaluatorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req dto.CreateEvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "schedule_id tidak valid")
	}

	row, created, err := ctl.Lifecycle.CreateOrGet(c.UserContext(), scheduleID, evaluatorID)
	if err != nil {
		return mapServiceErr(c, err)
	}
	if created {
		return helper.JsonCreated(c, "Evaluation dibuat", dto.FromModel(row))
	}
	return helper.JsonOK(c, "Evaluation sudah ada", dto.FromModel(row))
}

// GET /evaluations/me
func (ctl *EvaluationController) ListMine(c *fiber.Ctx) error {
	evaluatorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	rows, err := ctl.Lifecycle.ListByEvaluator(c.UserContext(), evaluatorID)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModels(rows))
}

// GET /evaluations/:id
func (ctl *EvaluationController) GetByID(c *fiber.Ctx) error {
	row, err := ctl.loadGuarded(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromModel(row))
}

// POST /evaluations/:id/submit
func (ctl *EvaluationController) Submit(c *fiber.Ctx) error {
	row, err := ctl.loadGuarded(c)
	if err != nil {
		return err
	}
	updated, err := ctl.Lifecycle.Submit(c.UserContext(), row.EvaluationID, nil)
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonUpdated(c, "Evaluation disubmit", dto.FromModel(updated))
}

// PUT /evaluations/:id/scores: upsert satu nilai kriteria
func (ctl *EvaluationController) UpsertScore(c *fiber.Ctx) error {
	row, err := ctl.loadGuarded(c)
	if err != nil {
		return err
	}

	var req dto.UpsertScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	criterionID, err := uuid.Parse(req.CriterionID)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "criterion_id tidak valid")
	}

	score, err := ctl.Lifecycle.UpsertScore(c.UserContext(), row.EvaluationID, criterionID, *req.Score, req.Comment)
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonUpdated(c, "Nilai tersimpan", dto.ScoreFromModel(score))
}

// POST /evaluations/:id/scores/bulk: multi-status
func (ctl *EvaluationController) BulkUpsertScores(c *fiber.Ctx) error {
	row, err := ctl.loadGuarded(c)
	if err != nil {
		return err
	}

	var req dto.BulkUpsertScoresRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctl.Lifecycle.BulkUpsertScores(c.UserContext(), row.EvaluationID, req.Items)
	if err != nil {
		return mapServiceErr(c, err)
	}

	out := dto.BulkUpsertScoresResponse{
		Items:  dto.ScoresFromModels(res.Items),
		Errors: res.Errors,
	}
	if len(res.Errors) > 0 {
		return helper.JsonMultiStatus(c, "Sebagian nilai gagal disimpan", out)
	}
	return helper.JsonUpdated(c, "Semua nilai tersimpan", out)
}

// DELETE /evaluations/:id/scores/:criterion_id: idempotent
func (ctl *EvaluationController) DeleteScore(c *fiber.Ctx) error {
	row, err := ctl.loadGuarded(c)
	if err != nil {
		return err
	}
	criterionID, err := parseUUIDParam(c, "criterion_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "criterion_id tidak valid")
	}

	n, err := ctl.Lifecycle.DeleteScore(c.UserContext(), row.EvaluationID, criterionID)
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonDeleted(c, "OK", fiber.Map{"removed_count": n})
}

// GET /evaluations/:id/scores
func (ctl *EvaluationController) ListScores(c *fiber.Ctx) error {
	row, err := ctl.loadGuarded(c)
	if err != nil {
		return err
	}
	rows, err := ctl.Lifecycle.Scoring.ListByEvaluation(c.UserContext(), row.EvaluationID)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.ScoresFromModels(rows))
}

// GET /evaluations/:id/summary: kriteria aktif + nilai + rata-rata tertimbang + member scores
func (ctl *EvaluationController) Summary(c *fiber.Ctx) error {
	row, err := ctl.loadGuarded(c)
	if err != nil {
		return err
	}
	sum, err := ctl.Lifecycle.Summary(c.UserContext(), row.EvaluationID)
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonOK(c, "OK", sum)
}

/* =========================
   Admin handlers
   ========================= */

// PATCH /evaluations/:id/status: override status eksplisit
func (ctl *EvaluationController) SetStatus(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("override status evaluation"))
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	var req dto.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctl.Lifecycle.SetStatus(c.UserContext(), id, model.EvaluationStatusEnum(req.Status))
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonUpdated(c, "Status diperbarui", dto.FromModel(row))
}

// POST /evaluations/:id/lock
func (ctl *EvaluationController) Lock(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("lock evaluation"))
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}
	row, err := ctl.Lifecycle.Lock(c.UserContext(), id, nil)
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonUpdated(c, "Evaluation dikunci", dto.FromModel(row))
}

// POST /evaluations/:id/unlock
func (ctl *EvaluationController) Unlock(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("unlock evaluation"))
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}
	row, err := ctl.Lifecycle.Unlock(c.UserContext(), id)
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonUpdated(c, "Evaluation dibuka", dto.FromModel(row))
}

// POST /defense-schedules/:id/evaluations: seed evaluation untuk semua penguji terdaftar
func (ctl *EvaluationController) SeedForSchedule(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("seeding evaluation"))
	}
	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}

	created, existing, err := ctl.Lifecycle.EnsureForSchedule(c.UserContext(), scheduleID)
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonCreated(c, "Evaluation disiapkan", dto.SeedEvaluationsResponse{
		CreatedCount:  created,
		ExistingCount: existing,
	})
}

// GET /defense-schedules/:id/evaluations
func (ctl *EvaluationController) ListBySchedule(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("melihat evaluation per jadwal"))
	}
	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}
	rows, err := ctl.Lifecycle.ListBySchedule(c.UserContext(), scheduleID)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModels(rows))
}

// GET /defense-schedules/:id/score-snapshot: count/avg/min/max lintas evaluation
func (ctl *EvaluationController) ScheduleSnapshot(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("melihat snapshot nilai"))
	}
	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}
	snap, err := ctl.Lifecycle.ScheduleSnapshot(c.UserContext(), scheduleID)
	if err != nil {
		return mapServiceErr(c, err)
	}
	return helper.JsonOK(c, "OK", snap)
}
