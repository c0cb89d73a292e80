// file: internals/features/defense/evaluations/service/lifecycle_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	model "sidangku_backend/internals/features/defense/evaluations/model"
	rubricModel "sidangku_backend/internals/features/defense/rubrics/model"
)

type evalPair struct{ sched, eval uuid.UUID }

type stubEvalStore struct {
	byID     map[uuid.UUID]*model.EvaluationModel
	raceOnce map[evalPair]bool
	creates  int
}

func newStubEvalStore() *stubEvalStore {
	return &stubEvalStore{
		byID:     map[uuid.UUID]*model.EvaluationModel{},
		raceOnce: map[evalPair]bool{},
	}
}

func (s *stubEvalStore) FindByID(_ context.Context, id uuid.UUID) (*model.EvaluationModel, error) {
	if r, ok := s.byID[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (s *stubEvalStore) findPairLocked(sched, eval uuid.UUID) *model.EvaluationModel {
	for _, r := range s.byID {
		if r.EvaluationScheduleID == sched && r.EvaluationEvaluatorID == eval {
			return r
		}
	}
	return nil
}

func (s *stubEvalStore) FindPair(_ context.Context, sched, eval uuid.UUID) (*model.EvaluationModel, error) {
	if r := s.findPairLocked(sched, eval); r != nil {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (s *stubEvalStore) ListBySchedule(_ context.Context, sched uuid.UUID) ([]model.EvaluationModel, error) {
	var out []model.EvaluationModel
	for _, r := range s.byID {
		if r.EvaluationScheduleID == sched {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubEvalStore) ListByEvaluator(_ context.Context, eval uuid.UUID) ([]model.EvaluationModel, error) {
	var out []model.EvaluationModel
	for _, r := range s.byID {
		if r.EvaluationEvaluatorID == eval {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubEvalStore) Create(_ context.Context, row *model.EvaluationModel) error {
	k := evalPair{sched: row.EvaluationScheduleID, eval: row.EvaluationEvaluatorID}
	if s.raceOnce[k] {
		s.raceOnce[k] = false
		winner := &model.EvaluationModel{
			EvaluationID:          uuid.New(),
			EvaluationScheduleID:  row.EvaluationScheduleID,
			EvaluationEvaluatorID: row.EvaluationEvaluatorID,
			EvaluationStatus:      model.EvaluationPending,
		}
		s.byID[winner.EvaluationID] = winner
		return fmt.Errorf("insert gagal: %w", &fakePGErr{state: "23505"})
	}
	if s.findPairLocked(row.EvaluationScheduleID, row.EvaluationEvaluatorID) != nil {
		return fmt.Errorf("insert gagal: %w", &fakePGErr{state: "23505"})
	}
	s.creates++
	row.EvaluationID = uuid.New()
	cp := *row
	s.byID[row.EvaluationID] = &cp
	return nil
}

func (s *stubEvalStore) Save(_ context.Context, row *model.EvaluationModel) error {
	cp := *row
	s.byID[row.EvaluationID] = &cp
	return nil
}

type stubAssignments struct {
	bySchedule map[uuid.UUID][]uuid.UUID
}

func (s *stubAssignments) StaffIDsBySchedule(_ context.Context, sched uuid.UUID) ([]uuid.UUID, error) {
	return s.bySchedule[sched], nil
}

type stubRubrics struct {
	criteria []rubricModel.RubricCriterionModel
}

func (s *stubRubrics) ActiveCriteria(_ context.Context) ([]rubricModel.RubricCriterionModel, error) {
	return s.criteria, nil
}

// stubSchedules: jadwal dianggap ada kecuali masuk daftar missing.
type stubSchedules struct {
	missing map[uuid.UUID]bool
}

func (s *stubSchedules) ScheduleExists(_ context.Context, id uuid.UUID) (bool, error) {
	return !s.missing[id], nil
}

func criterion(weight float64) rubricModel.RubricCriterionModel {
	return rubricModel.RubricCriterionModel{
		RubricCriterionID:     uuid.New(),
		RubricCriterionWeight: weight,
	}
}

func newLifecycleFixture() (*LifecycleService, *stubEvalStore, *stubScoreStore, *stubAssignments, *stubRubrics) {
	evals := newStubEvalStore()
	scores := newStubScoreStore()
	assigns := &stubAssignments{bySchedule: map[uuid.UUID][]uuid.UUID{}}
	rubrics := &stubRubrics{}
	scheds := &stubSchedules{missing: map[uuid.UUID]bool{}}
	svc := NewLifecycleService(evals, NewScoringService(scores), assigns, rubrics, scheds)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc, evals, scores, assigns, rubrics
}

func TestCreateOrGetIdempotent(t *testing.T) {
	svc, evals, _, _, _ := newLifecycleFixture()
	sched, staff := uuid.New(), uuid.New()

	first, created, err := svc.CreateOrGet(context.Background(), sched, staff)
	if err != nil || !created {
		t.Fatalf("panggilan pertama = (created=%v, err=%v), mau (true, nil)", created, err)
	}
	second, created, err := svc.CreateOrGet(context.Background(), sched, staff)
	if err != nil || created {
		t.Fatalf("panggilan kedua = (created=%v, err=%v), mau (false, nil)", created, err)
	}
	if first.EvaluationID != second.EvaluationID {
		t.Fatal("panggilan kedua harus mengembalikan baris yang sama")
	}
	if evals.creates != 1 {
		t.Fatalf("insert = %d, mau 1", evals.creates)
	}
	if first.EvaluationStatus != model.EvaluationPending {
		t.Fatalf("status awal = %s, mau pending", first.EvaluationStatus)
	}
}

func TestCreateOrGetConflictResolvedAsExisting(t *testing.T) {
	svc, evals, _, _, _ := newLifecycleFixture()
	sched, staff := uuid.New(), uuid.New()
	evals.raceOnce[evalPair{sched: sched, eval: staff}] = true

	row, created, err := svc.CreateOrGet(context.Background(), sched, staff)
	if err != nil {
		t.Fatalf("race harus di-resolve jadi existing, dapat %v", err)
	}
	if created {
		t.Fatal("kalah race berarti created=false")
	}
	if row == nil || row.EvaluationScheduleID != sched {
		t.Fatalf("baris pemenang harus dikembalikan, dapat %+v", row)
	}
}

func TestCreateOrGetRejectsMissingSchedule(t *testing.T) {
	svc, evals, _, _, _ := newLifecycleFixture()
	ghost := uuid.New()
	svc.Schedules.(*stubSchedules).missing[ghost] = true

	if _, _, err := svc.CreateOrGet(context.Background(), ghost, uuid.New()); !errors.Is(err, ErrScheduleNotFound) {
		t.Fatalf("schedule hilang = %v, mau ErrScheduleNotFound", err)
	}
	if evals.creates != 0 {
		t.Fatalf("tidak boleh ada evaluation tercipta untuk schedule hilang, insert = %d", evals.creates)
	}
}

func TestEnsureForScheduleRejectsMissingSchedule(t *testing.T) {
	svc, evals, _, assigns, _ := newLifecycleFixture()
	ghost := uuid.New()
	svc.Schedules.(*stubSchedules).missing[ghost] = true
	assigns.bySchedule[ghost] = []uuid.UUID{uuid.New(), uuid.New()}

	created, existing, err := svc.EnsureForSchedule(context.Background(), ghost)
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Fatalf("seed schedule hilang = %v, mau ErrScheduleNotFound", err)
	}
	if created != 0 || existing != 0 || evals.creates != 0 {
		t.Fatalf("seed schedule hilang tidak boleh menulis apa pun: (%d, %d, insert %d)", created, existing, evals.creates)
	}
}

func TestLifecycleSubmitLockUnlock(t *testing.T) {
	svc, _, _, _, _ := newLifecycleFixture()
	sched, staff := uuid.New(), uuid.New()
	row, _, err := svc.CreateOrGet(context.Background(), sched, staff)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	id := row.EvaluationID

	sub, err := svc.Submit(context.Background(), id, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.EvaluationStatus != model.EvaluationSubmitted || sub.EvaluationSubmittedAt == nil {
		t.Fatalf("setelah submit: %+v", sub)
	}
	firstSubmittedAt := *sub.EvaluationSubmittedAt

	// submit ulang no-op
	again, err := svc.Submit(context.Background(), id, nil)
	if err != nil || again.EvaluationStatus != model.EvaluationSubmitted {
		t.Fatalf("submit ulang harus no-op: %v %+v", err, again)
	}

	locked, err := svc.Lock(context.Background(), id, nil)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if locked.EvaluationStatus != model.EvaluationLocked || locked.EvaluationLockedAt == nil {
		t.Fatalf("setelah lock: %+v", locked)
	}

	// submit saat terkunci ditolak
	if _, err := svc.Submit(context.Background(), id, nil); !errors.Is(err, ErrEvaluationLocked) {
		t.Fatalf("submit saat locked = %v, mau ErrEvaluationLocked", err)
	}

	unlocked, err := svc.Unlock(context.Background(), id)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if unlocked.EvaluationStatus != model.EvaluationSubmitted {
		t.Fatalf("unlock harus jatuh ke submitted (pernah submit), dapat %s", unlocked.EvaluationStatus)
	}
	if unlocked.EvaluationLockedAt != nil {
		t.Fatal("locked_at harus dibersihkan setelah unlock")
	}
	if unlocked.EvaluationSubmittedAt == nil || !unlocked.EvaluationSubmittedAt.Equal(firstSubmittedAt) {
		t.Fatal("submitted_at asli harus dipertahankan")
	}
}

func TestSubmitAndLockHonorExplicitTimestamp(t *testing.T) {
	svc, _, _, _, _ := newLifecycleFixture()
	row, _, err := svc.CreateOrGet(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	at := time.Date(2026, 2, 1, 13, 30, 0, 0, time.UTC)

	sub, err := svc.Submit(context.Background(), row.EvaluationID, &at)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.EvaluationSubmittedAt == nil || !sub.EvaluationSubmittedAt.Equal(at) {
		t.Fatalf("submitted_at = %v, mau %v", sub.EvaluationSubmittedAt, at)
	}

	locked, err := svc.Lock(context.Background(), row.EvaluationID, &at)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if locked.EvaluationLockedAt == nil || !locked.EvaluationLockedAt.Equal(at) {
		t.Fatalf("locked_at = %v, mau %v", locked.EvaluationLockedAt, at)
	}
}

func TestUnlockFallbackPendingWhenNeverSubmitted(t *testing.T) {
	svc, _, _, _, _ := newLifecycleFixture()
	row, _, err := svc.CreateOrGet(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.Lock(context.Background(), row.EvaluationID, nil); err != nil {
		t.Fatalf("lock langsung dari pending: %v", err)
	}
	unlocked, err := svc.Unlock(context.Background(), row.EvaluationID)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if unlocked.EvaluationStatus != model.EvaluationPending {
		t.Fatalf("tanpa submit, unlock jatuh ke pending, dapat %s", unlocked.EvaluationStatus)
	}
}

func TestUnlockNotLockedIsNoop(t *testing.T) {
	svc, _, _, _, _ := newLifecycleFixture()
	row, _, err := svc.CreateOrGet(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := svc.Unlock(context.Background(), row.EvaluationID)
	if err != nil || got.EvaluationStatus != model.EvaluationPending {
		t.Fatalf("unlock evaluation tidak terkunci harus no-op: %v %+v", err, got)
	}
}

func TestLockedRejectsScoreMutationsUntilUnlock(t *testing.T) {
	svc, _, scores, _, _ := newLifecycleFixture()
	row, _, err := svc.CreateOrGet(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	id := row.EvaluationID
	critID := uuid.New()

	if _, err := svc.UpsertScore(context.Background(), id, critID, 70, nil); err != nil {
		t.Fatalf("upsert sebelum lock: %v", err)
	}
	if _, err := svc.Lock(context.Background(), id, nil); err != nil {
		t.Fatalf("lock: %v", err)
	}

	if _, err := svc.UpsertScore(context.Background(), id, critID, 99, nil); !errors.Is(err, ErrEvaluationLocked) {
		t.Fatalf("upsert saat locked = %v, mau ErrEvaluationLocked", err)
	}
	if _, err := svc.BulkUpsertScores(context.Background(), id, []BulkScoreItem{{CriterionID: critID.String(), Score: fptr(99)}}); !errors.Is(err, ErrEvaluationLocked) {
		t.Fatalf("bulk saat locked = %v, mau ErrEvaluationLocked", err)
	}
	if _, err := svc.DeleteScore(context.Background(), id, critID); !errors.Is(err, ErrEvaluationLocked) {
		t.Fatalf("delete saat locked = %v, mau ErrEvaluationLocked", err)
	}
	if got := scores.rows[scorePair{eval: id, crit: critID}]; got == nil || got.EvaluationScoreScore != 70 {
		t.Fatalf("nilai tidak boleh berubah selama locked, dapat %+v", got)
	}

	if _, err := svc.Unlock(context.Background(), id); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	updated, err := svc.UpsertScore(context.Background(), id, critID, 99, nil)
	if err != nil {
		t.Fatalf("upsert setelah unlock: %v", err)
	}
	if updated.EvaluationScoreScore != 99 {
		t.Fatalf("setelah unlock mutasi harus jalan, dapat %v", updated.EvaluationScoreScore)
	}
}

func TestSetStatusRejectsUnknown(t *testing.T) {
	svc, _, _, _, _ := newLifecycleFixture()
	row, _, err := svc.CreateOrGet(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.SetStatus(context.Background(), row.EvaluationID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("status asing = %v, mau ErrInvalidStatus", err)
	}
}

func TestMutationsOnMissingEvaluation(t *testing.T) {
	svc, _, _, _, _ := newLifecycleFixture()
	ghost := uuid.New()
	if _, err := svc.Submit(context.Background(), ghost, nil); !errors.Is(err, ErrEvaluationNotFound) {
		t.Fatalf("submit evaluation hilang = %v", err)
	}
	if _, err := svc.UpsertScore(context.Background(), ghost, uuid.New(), 10, nil); !errors.Is(err, ErrEvaluationNotFound) {
		t.Fatalf("upsert evaluation hilang = %v", err)
	}
}

func TestEnsureForScheduleCounts(t *testing.T) {
	svc, _, _, assigns, _ := newLifecycleFixture()
	sched := uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	assigns.bySchedule[sched] = []uuid.UUID{a, b}

	created, existing, err := svc.EnsureForSchedule(context.Background(), sched)
	if err != nil || created != 2 || existing != 0 {
		t.Fatalf("seed pertama = (%d, %d, %v), mau (2, 0, nil)", created, existing, err)
	}

	assigns.bySchedule[sched] = []uuid.UUID{a, b, c}
	created, existing, err = svc.EnsureForSchedule(context.Background(), sched)
	if err != nil || created != 1 || existing != 2 {
		t.Fatalf("seed kedua = (%d, %d, %v), mau (1, 2, nil)", created, existing, err)
	}
}

func TestSummaryJoinsActiveCriteria(t *testing.T) {
	svc, evals, _, _, rubrics := newLifecycleFixture()
	c1 := criterion(1)
	c2 := criterion(3)
	c3 := criterion(2)
	rubrics.criteria = []rubricModel.RubricCriterionModel{c1, c2, c3}

	row := &model.EvaluationModel{
		EvaluationID:          uuid.New(),
		EvaluationScheduleID:  uuid.New(),
		EvaluationEvaluatorID: uuid.New(),
		EvaluationStatus:      model.EvaluationPending,
		EvaluationExtras:      []byte(`{"member_scores":[{"member_id":"2019001234","score":90}]}`),
	}
	evals.byID[row.EvaluationID] = row

	if _, err := svc.UpsertScore(context.Background(), row.EvaluationID, c1.RubricCriterionID, 4, nil); err != nil {
		t.Fatalf("seed score c1: %v", err)
	}
	if _, err := svc.UpsertScore(context.Background(), row.EvaluationID, c2.RubricCriterionID, 2, sptr("catatan")); err != nil {
		t.Fatalf("seed score c2: %v", err)
	}

	sum, err := svc.Summary(context.Background(), row.EvaluationID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(sum.Rows) != 3 {
		t.Fatalf("rows = %d, mau 3 (semua kriteria aktif tampil)", len(sum.Rows))
	}
	if sum.Rows[2].Score != nil {
		t.Fatal("kriteria belum dinilai harus tampil tanpa score")
	}
	if sum.Weighted.ScoredCount != 2 {
		t.Fatalf("ScoredCount = %d, mau 2", sum.Weighted.ScoredCount)
	}
	// (4*1 + 2*3) / (1+3) = 2.5; kriteria tak ternilai tidak menyeret penyebut
	if math.Abs(sum.Weighted.WeightedAverage-2.5) > 1e-9 {
		t.Fatalf("WeightedAverage = %v, mau 2.5", sum.Weighted.WeightedAverage)
	}
	if len(sum.Members) != 1 || sum.Members[0].MemberID != "2019001234" {
		t.Fatalf("members dari extras = %+v", sum.Members)
	}
}

func TestScheduleSnapshotExcludesUnscored(t *testing.T) {
	svc, evals, _, _, rubrics := newLifecycleFixture()
	c1 := criterion(1)
	rubrics.criteria = []rubricModel.RubricCriterionModel{c1}
	sched := uuid.New()

	mk := func() *model.EvaluationModel {
		r := &model.EvaluationModel{
			EvaluationID:          uuid.New(),
			EvaluationScheduleID:  sched,
			EvaluationEvaluatorID: uuid.New(),
			EvaluationStatus:      model.EvaluationPending,
		}
		evals.byID[r.EvaluationID] = r
		return r
	}
	e1, e2, e3 := mk(), mk(), mk()
	_ = e3 // belum dinilai sama sekali

	if _, err := svc.UpsertScore(context.Background(), e1.EvaluationID, c1.RubricCriterionID, 70, nil); err != nil {
		t.Fatalf("seed e1: %v", err)
	}
	if _, err := svc.UpsertScore(context.Background(), e2.EvaluationID, c1.RubricCriterionID, 90, nil); err != nil {
		t.Fatalf("seed e2: %v", err)
	}

	snap, err := svc.ScheduleSnapshot(context.Background(), sched)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Count != 2 {
		t.Fatalf("Count = %d, mau 2 (evaluation kosong dikeluarkan, bukan dihitung nol)", snap.Count)
	}
	if snap.Min != 70 || snap.Max != 90 || math.Abs(snap.Avg-80) > 1e-9 {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestScheduleSnapshotEmptySchedule(t *testing.T) {
	svc, _, _, _, _ := newLifecycleFixture()
	snap, err := svc.ScheduleSnapshot(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Count != 0 || snap.Avg != 0 {
		t.Fatalf("jadwal tanpa evaluation harus snapshot nol, dapat %+v", snap)
	}
}
