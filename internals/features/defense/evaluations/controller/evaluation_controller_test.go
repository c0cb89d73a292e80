// file: internals/features/defense/evaluations/controller/evaluation_controller_test.go
package controller

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sidangku_backend/internals/constants"
	model "sidangku_backend/internals/features/defense/evaluations/model"
	svc "sidangku_backend/internals/features/defense/evaluations/service"
	rubricModel "sidangku_backend/internals/features/defense/rubrics/model"
	helperAuth "sidangku_backend/internals/helpers/auth"
)

/* =========================
   Stub kosong untuk wiring handler
   ========================= */

type emptyEvalStore struct{}

func (emptyEvalStore) FindByID(context.Context, uuid.UUID) (*model.EvaluationModel, error) {
	return nil, nil
}
func (emptyEvalStore) FindPair(context.Context, uuid.UUID, uuid.UUID) (*model.EvaluationModel, error) {
	return nil, nil
}
func (emptyEvalStore) ListBySchedule(context.Context, uuid.UUID) ([]model.EvaluationModel, error) {
	return nil, nil
}
func (emptyEvalStore) ListByEvaluator(context.Context, uuid.UUID) ([]model.EvaluationModel, error) {
	return nil, nil
}
func (emptyEvalStore) Create(context.Context, *model.EvaluationModel) error { return nil }
func (emptyEvalStore) Save(context.Context, *model.EvaluationModel) error   { return nil }

type emptyScoreStore struct{}

func (emptyScoreStore) ListByEvaluation(context.Context, uuid.UUID) ([]model.EvaluationScoreModel, error) {
	return nil, nil
}
func (emptyScoreStore) FindPair(context.Context, uuid.UUID, uuid.UUID) (*model.EvaluationScoreModel, error) {
	return nil, nil
}
func (emptyScoreStore) Create(context.Context, *model.EvaluationScoreModel) error { return nil }
func (emptyScoreStore) Save(context.Context, *model.EvaluationScoreModel) error   { return nil }
func (emptyScoreStore) DeletePair(context.Context, uuid.UUID, uuid.UUID) (int64, error) {
	return 0, nil
}

type emptyAssignments struct{}

func (emptyAssignments) StaffIDsBySchedule(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

type emptyRubrics struct{}

func (emptyRubrics) ActiveCriteria(context.Context) ([]rubricModel.RubricCriterionModel, error) {
	return nil, nil
}

type openSchedules struct{}

func (openSchedules) ScheduleExists(context.Context, uuid.UUID) (bool, error) { return true, nil }

func newTestController() *EvaluationController {
	lifecycle := svc.NewLifecycleService(
		emptyEvalStore{},
		svc.NewScoringService(emptyScoreStore{}),
		emptyAssignments{},
		emptyRubrics{},
		openSchedules{},
	)
	return &EvaluationController{Lifecycle: lifecycle, Validate: validator.New()}
}

// newRoleApp meniru hydrate Locals yang dilakukan AuthJWT sebelum handler.
func newRoleApp(role string, h fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/defense-schedules/:id/t", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserID, uuid.New().String())
		c.Locals(helperAuth.LocRole, role)
		return h(c)
	})
	return app
}

func TestScheduleScopedHandlersAdminOnly(t *testing.T) {
	ctl := newTestController()
	target := "/defense-schedules/" + uuid.New().String() + "/t"
	handlers := []struct {
		name string
		h    fiber.Handler
	}{
		{"ListBySchedule", ctl.ListBySchedule},
		{"ScheduleSnapshot", ctl.ScheduleSnapshot},
		{"SeedForSchedule", ctl.SeedForSchedule},
	}

	for _, tc := range handlers {
		app := newRoleApp(constants.RoleStaff, tc.h)
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
		if err != nil {
			t.Fatalf("%s (staff): %v", tc.name, err)
		}
		if resp.StatusCode != fiber.StatusForbidden {
			t.Errorf("%s dipanggil staff = %d, mau 403", tc.name, resp.StatusCode)
		}

		app = newRoleApp(constants.RoleAdmin, tc.h)
		resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
		if err != nil {
			t.Fatalf("%s (admin): %v", tc.name, err)
		}
		if resp.StatusCode == fiber.StatusForbidden {
			t.Errorf("%s dipanggil admin = %d, admin tidak boleh ditolak", tc.name, resp.StatusCode)
		}
	}
}
