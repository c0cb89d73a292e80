// file: internals/features/defense/evaluations/service/lifecycle_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	model "sidangku_backend/internals/features/defense/evaluations/model"
	rubricModel "sidangku_backend/internals/features/defense/rubrics/model"
)

/* =========================
   Capability interfaces (supaya bisa distub di test)
   ========================= */

// EvaluationStore: storage evaluation. FindByID / FindPair mengembalikan
// (nil, nil) kalau tidak ada, bukan error.
type EvaluationStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.EvaluationModel, error)
	FindPair(ctx context.Context, scheduleID, evaluatorID uuid.UUID) (*model.EvaluationModel, error)
	ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]model.EvaluationModel, error)
	ListByEvaluator(ctx context.Context, evaluatorID uuid.UUID) ([]model.EvaluationModel, error)
	Create(ctx context.Context, row *model.EvaluationModel) error
	Save(ctx context.Context, row *model.EvaluationModel) error
}

// AssignmentSource: daftar penguji yang ditugaskan pada satu jadwal.
type AssignmentSource interface {
	StaffIDsBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]uuid.UUID, error)
}

// ScheduleSource: cek keberadaan jadwal. Evaluation tidak menyimpan FK ke
// schedule, jadi referensi dicek di sini sebelum baris dibuat.
type ScheduleSource interface {
	ScheduleExists(ctx context.Context, scheduleID uuid.UUID) (bool, error)
}

// RubricSource: kriteria aktif untuk summary.
type RubricSource interface {
	ActiveCriteria(ctx context.Context) ([]rubricModel.RubricCriterionModel, error)
}

// UnlockPolicy menentukan status tujuan saat unlock. Dipakai kalau caller
// tidak meminta status eksplisit.
type UnlockPolicy func(e *model.EvaluationModel) model.EvaluationStatusEnum

// DefaultUnlockPolicy: balik ke submitted kalau pernah submit, selain itu pending.
func DefaultUnlockPolicy(e *model.EvaluationModel) model.EvaluationStatusEnum {
	if e.EvaluationSubmittedAt != nil {
		return model.EvaluationSubmitted
	}
	return model.EvaluationPending
}

/* =========================
   LifecycleService
   ========================= */

// LifecycleService mengelola state machine evaluation dan MENJADI satu-satunya
// jalur mutasi nilai: semua upsert/delete score lewat sini supaya guard
// "locked menolak perubahan" tidak bisa dilompati.
type LifecycleService struct {
	Evals       EvaluationStore
	Scoring     *ScoringService
	Assignments AssignmentSource
	Rubrics     RubricSource
	Schedules   ScheduleSource

	UnlockFallback UnlockPolicy
	now            func() time.Time
}

func NewLifecycleService(evals EvaluationStore, scoring *ScoringService, assignments AssignmentSource, rubrics RubricSource, schedules ScheduleSource) *LifecycleService {
	return &LifecycleService{
		Evals:          evals,
		Scoring:        scoring,
		Assignments:    assignments,
		Rubrics:        rubrics,
		Schedules:      schedules,
		UnlockFallback: DefaultUnlockPolicy,
		now:            time.Now,
	}
}

func (s *LifecycleService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *LifecycleService) mustGet(ctx context.Context, id uuid.UUID) (*model.EvaluationModel, error) {
	row, err := s.Evals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrEvaluationNotFound
	}
	return row, nil
}

/* =========================
   Create / Get
   ========================= */

func (s *LifecycleService) ensureSchedule(ctx context.Context, scheduleID uuid.UUID) error {
	ok, err := s.Schedules.ScheduleExists(ctx, scheduleID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrScheduleNotFound
	}
	return nil
}

// CreateOrGet: idempotent per pasangan (schedule, evaluator). Panggilan kedua
// mengembalikan baris yang sama dengan created=false, bukan error. Jadwal yang
// tidak ada ditolak sebelum insert.
func (s *LifecycleService) CreateOrGet(ctx context.Context, scheduleID, evaluatorID uuid.UUID) (*model.EvaluationModel, bool, error) {
	if err := s.ensureSchedule(ctx, scheduleID); err != nil {
		return nil, false, err
	}
	return s.createOrGet(ctx, scheduleID, evaluatorID)
}

func (s *LifecycleService) createOrGet(ctx context.Context, scheduleID, evaluatorID uuid.UUID) (*model.EvaluationModel, bool, error) {
	if existing, err := s.Evals.FindPair(ctx, scheduleID, evaluatorID); err != nil {
		return nil, false, err
	} else if existing != nil {
		return existing, false, nil
	}

	row := model.EvaluationModel{
		EvaluationScheduleID:  scheduleID,
		EvaluationEvaluatorID: evaluatorID,
		EvaluationStatus:      model.EvaluationPending,
	}
	if err := s.Evals.Create(ctx, &row); err != nil {
		if IsUniqueViolation(err) {
			// kalah race dengan writer lain, pakai baris yang menang
			again, ferr := s.Evals.FindPair(ctx, scheduleID, evaluatorID)
			if ferr != nil {
				return nil, false, ferr
			}
			if again != nil {
				return again, false, nil
			}
		}
		return nil, false, err
	}
	return &row, true, nil
}

func (s *LifecycleService) Get(ctx context.Context, id uuid.UUID) (*model.EvaluationModel, error) {
	return s.mustGet(ctx, id)
}

func (s *LifecycleService) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]model.EvaluationModel, error) {
	return s.Evals.ListBySchedule(ctx, scheduleID)
}

func (s *LifecycleService) ListByEvaluator(ctx context.Context, evaluatorID uuid.UUID) ([]model.EvaluationModel, error) {
	return s.Evals.ListByEvaluator(ctx, evaluatorID)
}

// EnsureForSchedule membuat evaluation pending untuk tiap penguji terdaftar
// yang belum punya. Aman dipanggil ulang.
func (s *LifecycleService) EnsureForSchedule(ctx context.Context, scheduleID uuid.UUID) (created int, existing int, err error) {
	if err := s.ensureSchedule(ctx, scheduleID); err != nil {
		return 0, 0, err
	}
	staffIDs, err := s.Assignments.StaffIDsBySchedule(ctx, scheduleID)
	if err != nil {
		return 0, 0, err
	}
	for _, staffID := range staffIDs {
		_, wasCreated, cerr := s.createOrGet(ctx, scheduleID, staffID)
		if cerr != nil {
			return created, existing, cerr
		}
		if wasCreated {
			created++
		} else {
			existing++
		}
	}
	return created, existing, nil
}

/* =========================
   State machine
   ========================= */

func (s *LifecycleService) applyStatus(e *model.EvaluationModel, target model.EvaluationStatusEnum) {
	now := s.clock()
	e.EvaluationStatus = target
	switch target {
	case model.EvaluationSubmitted:
		if e.EvaluationSubmittedAt == nil {
			e.EvaluationSubmittedAt = &now
		}
		e.EvaluationLockedAt = nil
	case model.EvaluationLocked:
		if e.EvaluationLockedAt == nil {
			e.EvaluationLockedAt = &now
		}
	case model.EvaluationPending:
		e.EvaluationLockedAt = nil
	}
}

// SetStatus: transisi eksplisit ke status manapun yang valid (admin override).
func (s *LifecycleService) SetStatus(ctx context.Context, id uuid.UUID, target model.EvaluationStatusEnum) (*model.EvaluationModel, error) {
	if !model.ValidStatus(target) {
		return nil, ErrInvalidStatus
	}
	row, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.EvaluationStatus == target {
		return row, nil
	}
	s.applyStatus(row, target)
	if err := s.Evals.Save(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Submit: pending → submitted. at opsional (nil = sekarang). Submit ulang
// evaluation yang sudah submitted no-op; evaluation terkunci menolak.
func (s *LifecycleService) Submit(ctx context.Context, id uuid.UUID, at *time.Time) (*model.EvaluationModel, error) {
	row, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	switch row.EvaluationStatus {
	case model.EvaluationSubmitted:
		return row, nil
	case model.EvaluationLocked:
		return nil, ErrEvaluationLocked
	}
	s.applyStatus(row, model.EvaluationSubmitted)
	if at != nil {
		t := *at
		row.EvaluationSubmittedAt = &t
	}
	if err := s.Evals.Save(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Lock: bekukan evaluation. at opsional (nil = sekarang). Lock ulang no-op.
func (s *LifecycleService) Lock(ctx context.Context, id uuid.UUID, at *time.Time) (*model.EvaluationModel, error) {
	row, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.EvaluationStatus == model.EvaluationLocked {
		return row, nil
	}
	s.applyStatus(row, model.EvaluationLocked)
	if at != nil {
		t := *at
		row.EvaluationLockedAt = &t
	}
	if err := s.Evals.Save(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Unlock: buka evaluation terkunci. Status tujuan mengikuti UnlockFallback
// (submitted kalau pernah submit, selain itu pending). Unlock evaluation yang
// tidak terkunci no-op.
func (s *LifecycleService) Unlock(ctx context.Context, id uuid.UUID) (*model.EvaluationModel, error) {
	row, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.EvaluationStatus != model.EvaluationLocked {
		return row, nil
	}
	policy := s.UnlockFallback
	if policy == nil {
		policy = DefaultUnlockPolicy
	}
	s.applyStatus(row, policy(row))
	if err := s.Evals.Save(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

/* =========================
   Mutasi nilai (lewat guard lock)
   ========================= */

func (s *LifecycleService) ensureMutable(ctx context.Context, evaluationID uuid.UUID) (*model.EvaluationModel, error) {
	row, err := s.mustGet(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	if row.EvaluationStatus == model.EvaluationLocked {
		return nil, ErrEvaluationLocked
	}
	return row, nil
}

func (s *LifecycleService) UpsertScore(ctx context.Context, evaluationID, criterionID uuid.UUID, score float64, comment *string) (*model.EvaluationScoreModel, error) {
	if _, err := s.ensureMutable(ctx, evaluationID); err != nil {
		return nil, err
	}
	return s.Scoring.Upsert(ctx, evaluationID, criterionID, score, comment)
}

func (s *LifecycleService) BulkUpsertScores(ctx context.Context, evaluationID uuid.UUID, items []BulkScoreItem) (*BulkUpsertResult, error) {
	if _, err := s.ensureMutable(ctx, evaluationID); err != nil {
		return nil, err
	}
	return s.Scoring.BulkUpsert(ctx, evaluationID, items)
}

func (s *LifecycleService) DeleteScore(ctx context.Context, evaluationID, criterionID uuid.UUID) (int64, error) {
	if _, err := s.ensureMutable(ctx, evaluationID); err != nil {
		return 0, err
	}
	return s.Scoring.Delete(ctx, evaluationID, criterionID)
}

/* =========================
   Summary & snapshot
   ========================= */

// CriterionRow: satu kriteria aktif plus nilainya (kalau sudah diisi).
type CriterionRow struct {
	Criterion rubricModel.RubricCriterionModel `json:"criterion"`
	Score     *float64                         `json:"score,omitempty"`
	Comment   *string                          `json:"comment,omitempty"`
}

type EvaluationSummary struct {
	Evaluation model.EvaluationModel `json:"evaluation"`
	Rows       []CriterionRow        `json:"rows"`
	Weighted   WeightedSummary       `json:"weighted"`
	Members    []ExtractedScore      `json:"members,omitempty"`
}

// Summary menggabungkan kriteria aktif dengan nilai yang ada, menghitung
// rata-rata tertimbang, dan mengekstrak nilai per-anggota dari blob extras.
func (s *LifecycleService) Summary(ctx context.Context, evaluationID uuid.UUID) (*EvaluationSummary, error) {
	eval, err := s.mustGet(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	criteria, err := s.Rubrics.ActiveCriteria(ctx)
	if err != nil {
		return nil, err
	}
	scores, err := s.Scoring.ListByEvaluation(ctx, evaluationID)
	if err != nil {
		return nil, err
	}

	byCriterion := make(map[uuid.UUID]*model.EvaluationScoreModel, len(scores))
	for i := range scores {
		byCriterion[scores[i].EvaluationScoreCriterionID] = &scores[i]
	}

	out := &EvaluationSummary{
		Evaluation: *eval,
		Rows:       make([]CriterionRow, 0, len(criteria)),
		Members:    ExtractMemberScores(eval.EvaluationExtras),
	}
	inputs := make([]CriterionScoreInput, 0, len(criteria))
	for _, c := range criteria {
		row := CriterionRow{Criterion: c}
		w := c.RubricCriterionWeight
		input := CriterionScoreInput{Weight: &w}
		if sc, ok := byCriterion[c.RubricCriterionID]; ok {
			v := sc.EvaluationScoreScore
			row.Score = &v
			row.Comment = sc.EvaluationScoreComment
			input.Score = &v
		}
		out.Rows = append(out.Rows, row)
		inputs = append(inputs, input)
	}
	out.Weighted = ComputeWeightedSummary(inputs)
	return out, nil
}

// evaluationAverage: rata-rata tertimbang satu evaluation atas kriteria aktif.
// ok=false kalau belum ada satu pun kriteria ternilai.
func (s *LifecycleService) evaluationAverage(ctx context.Context, evaluationID uuid.UUID, criteria []rubricModel.RubricCriterionModel) (float64, bool, error) {
	scores, err := s.Scoring.ListByEvaluation(ctx, evaluationID)
	if err != nil {
		return 0, false, err
	}
	byCriterion := make(map[uuid.UUID]float64, len(scores))
	for _, sc := range scores {
		byCriterion[sc.EvaluationScoreCriterionID] = sc.EvaluationScoreScore
	}
	inputs := make([]CriterionScoreInput, 0, len(criteria))
	for _, c := range criteria {
		w := c.RubricCriterionWeight
		input := CriterionScoreInput{Weight: &w}
		if v, ok := byCriterion[c.RubricCriterionID]; ok {
			vv := v
			input.Score = &vv
		}
		inputs = append(inputs, input)
	}
	sum := ComputeWeightedSummary(inputs)
	if sum.ScoredCount == 0 {
		return 0, false, nil
	}
	return sum.WeightedAverage, true, nil
}

// ScheduleSnapshot: statistik count/avg/min/max lintas evaluation satu jadwal.
// Evaluation tanpa nilai sama sekali dikeluarkan dari statistik.
func (s *LifecycleService) ScheduleSnapshot(ctx context.Context, scheduleID uuid.UUID) (*ScheduleSnapshot, error) {
	evals, err := s.Evals.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	criteria, err := s.Rubrics.ActiveCriteria(ctx)
	if err != nil {
		return nil, err
	}

	type avgSlot struct {
		avg float64
		ok  bool
	}
	slots := make([]avgSlot, len(evals))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range evals {
		i := i
		id := evals[i].EvaluationID
		g.Go(func() error {
			avg, ok, aerr := s.evaluationAverage(gctx, id, criteria)
			if aerr != nil {
				return aerr
			}
			slots[i] = avgSlot{avg: avg, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	avgs := make([]float64, 0, len(slots))
	for _, sl := range slots {
		if sl.ok {
			avgs = append(avgs, sl.avg)
		}
	}
	snap := SnapshotFromAverages(avgs)
	return &snap, nil
}
