// file: internals/features/defense/rubrics/controller/rubric_controller.go
package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sidangku_backend/internals/constants"
	dto "sidangku_backend/internals/features/defense/rubrics/dto"
	model "sidangku_backend/internals/features/defense/rubrics/model"
	repo "sidangku_backend/internals/features/defense/rubrics/repository"
	helper "sidangku_backend/internals/helpers"
	helperAuth "sidangku_backend/internals/helpers/auth"
)

type RubricController struct {
	Repo     *repo.RubricRepository
	Validate *validator.Validate
}

func New(db *gorm.DB) *RubricController {
	return &RubricController{
		Repo:     repo.New(db),
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

/* =========================
   Read (staff + admin)
   ========================= */

// GET /rubric-templates/active
func (ctl *RubricController) GetActive(c *fiber.Ctx) error {
	tpl, err := ctl.Repo.FindActiveTemplate(c.UserContext())
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if tpl == nil {
		return helper.JsonError(c, http.StatusNotFound, "Belum ada rubric aktif")
	}
	return helper.JsonOK(c, "OK", dto.TemplateFromModel(tpl))
}

// GET /rubric-templates/:id/criteria
func (ctl *RubricController) ListCriteria(c *fiber.Ctx) error {
	templateID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}
	rows, err := ctl.Repo.ListCriteriaByTemplate(c.UserContext(), templateID)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.CriteriaFromModels(rows))
}

/* =========================
   Admin
   ========================= */

// GET /rubric-templates
func (ctl *RubricController) ListTemplates(c *fiber.Ctx) error {
	rows, err := ctl.Repo.ListTemplates(c.UserContext())
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.TemplatesFromModels(rows))
}

// POST /rubric-templates: template + kriteria sekaligus
func (ctl *RubricController) CreateTemplate(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("kelola rubric"))
	}

	var req dto.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	tpl := model.RubricTemplateModel{
		RubricTemplateName:     strings.TrimSpace(req.Name),
		RubricTemplateIsActive: req.IsActive,
	}
	criteria := make([]model.RubricCriterionModel, 0, len(req.Criteria))
	for i, cr := range req.Criteria {
		row := model.RubricCriterionModel{
			RubricCriterionText:        strings.TrimSpace(cr.Text),
			RubricCriterionDescription: cr.Description,
			RubricCriterionWeight:      1,
			RubricCriterionMinScore:    0,
			RubricCriterionMaxScore:    100,
			RubricCriterionPosition:    cr.Position,
		}
		if row.RubricCriterionPosition == 0 {
			row.RubricCriterionPosition = i + 1
		}
		if cr.Weight != nil {
			row.RubricCriterionWeight = *cr.Weight
		}
		if cr.MinScore != nil {
			row.RubricCriterionMinScore = *cr.MinScore
		}
		if cr.MaxScore != nil {
			row.RubricCriterionMaxScore = *cr.MaxScore
		}
		if row.RubricCriterionMaxScore < row.RubricCriterionMinScore {
			return helper.JsonError(c, http.StatusBadRequest,
				fmt.Sprintf("Kriteria #%d: max_score lebih kecil dari min_score", i+1))
		}
		criteria = append(criteria, row)
	}

	if err := ctl.Repo.CreateTemplateWithCriteria(c.UserContext(), &tpl, criteria); err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Rubric dibuat", dto.TemplateFromModel(&tpl))
}

// POST /rubric-templates/:id/activate
func (ctl *RubricController) Activate(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("kelola rubric"))
	}
	templateID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID tidak valid")
	}
	if err := ctl.Repo.SetActive(c.UserContext(), templateID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, http.StatusNotFound, "Rubric tidak ditemukan")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Rubric diaktifkan", fiber.Map{"template_id": templateID})
}
