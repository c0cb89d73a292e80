package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	model "sidangku_backend/internals/features/defense/panelists/model"
	userModel "sidangku_backend/internals/features/users/users/model"
	userService "sidangku_backend/internals/features/users/users/service"
)

/* =========================
   Stubs
   ========================= */

type fakePGErr struct{ state string }

func (e fakePGErr) Error() string    { return "pg error " + e.state }
func (e fakePGErr) SQLState() string { return e.state }

type pairKey struct{ schedule, staff uuid.UUID }

// Mutex karena AssignMany memanggil store dari banyak goroutine.
type stubPanelistStore struct {
	mu   sync.Mutex
	rows map[pairKey]model.SchedulePanelistModel
	// kalau di-set, Create pertama untuk key ini gagal unique (simulasi race)
	raceOnce map[pairKey]bool
}

func newStubPanelistStore() *stubPanelistStore {
	return &stubPanelistStore{
		rows:     map[pairKey]model.SchedulePanelistModel{},
		raceOnce: map[pairKey]bool{},
	}
}

func (s *stubPanelistStore) ListBySchedule(_ context.Context, scheduleID uuid.UUID) ([]model.SchedulePanelistModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.SchedulePanelistModel
	for k, v := range s.rows {
		if k.schedule == scheduleID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *stubPanelistStore) ListByStaff(_ context.Context, staffID uuid.UUID) ([]model.SchedulePanelistModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.SchedulePanelistModel
	for k, v := range s.rows {
		if k.staff == staffID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *stubPanelistStore) FindPair(_ context.Context, scheduleID, staffID uuid.UUID) (*model.SchedulePanelistModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.rows[pairKey{scheduleID, staffID}]; ok {
		cp := v
		return &cp, nil
	}
	return nil, nil
}

func (s *stubPanelistStore) Create(_ context.Context, row *model.SchedulePanelistModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pairKey{row.SchedulePanelistScheduleID, row.SchedulePanelistStaffID}
	if s.raceOnce[k] {
		// writer lain menang race: baris muncul + unique violation dilempar
		delete(s.raceOnce, k)
		s.rows[k] = *row
		return fakePGErr{state: "23505"}
	}
	if _, ok := s.rows[k]; ok {
		return fakePGErr{state: "23505"}
	}
	row.SchedulePanelistID = uuid.New()
	s.rows[k] = *row
	return nil
}

func (s *stubPanelistStore) DeletePair(_ context.Context, scheduleID, staffID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pairKey{scheduleID, staffID}
	if _, ok := s.rows[k]; !ok {
		return 0, nil
	}
	delete(s.rows, k)
	return 1, nil
}

type stubResolver struct {
	users map[string]*userModel.UserModel
}

func (s *stubResolver) ResolveWithCache(_ context.Context, _ *userService.ResolverCache, candidate string) (*userModel.UserModel, error) {
	key := userService.ExtractCandidateID(candidate)
	if u, ok := s.users[key]; ok {
		return u, nil
	}
	return nil, userService.ErrUserNotFound
}

/* =========================
   Tests
   ========================= */

func TestAssignManyIdempotent(t *testing.T) {
	scheduleID := uuid.New()
	staff := uuid.New()
	store := newStubPanelistStore()
	resolver := &stubResolver{users: map[string]*userModel.UserModel{
		staff.String(): {UserID: staff, UserRole: "staff"},
	}}
	svc := NewPanelistService(store, resolver)

	// panggilan pertama → created
	res1, err := svc.AssignMany(context.Background(), scheduleID, []string{staff.String()})
	if err != nil {
		t.Fatalf("AssignMany() error = %v", err)
	}
	if res1.CreatedCount != 1 || res1.ExistingCount != 0 {
		t.Errorf("first call = created %d existing %d, want 1/0", res1.CreatedCount, res1.ExistingCount)
	}

	// panggilan kedua → existing, tidak ada baris baru
	res2, err := svc.AssignMany(context.Background(), scheduleID, []string{staff.String()})
	if err != nil {
		t.Fatalf("AssignMany() error = %v", err)
	}
	if res2.CreatedCount != 0 || res2.ExistingCount != 1 {
		t.Errorf("second call = created %d existing %d, want 0/1", res2.CreatedCount, res2.ExistingCount)
	}
	if len(store.rows) != 1 {
		t.Errorf("rows = %d, want exactly 1", len(store.rows))
	}
}

func TestAssignManyConflictResolvedAsExisting(t *testing.T) {
	scheduleID := uuid.New()
	staff := uuid.New()
	store := newStubPanelistStore()
	store.raceOnce[pairKey{scheduleID, staff}] = true
	resolver := &stubResolver{users: map[string]*userModel.UserModel{
		staff.String(): {UserID: staff},
	}}
	svc := NewPanelistService(store, resolver)

	res, err := svc.AssignMany(context.Background(), scheduleID, []string{staff.String()})
	if err != nil {
		t.Fatalf("AssignMany() error = %v (conflict harus diserap)", err)
	}
	if res.CreatedCount != 0 || res.ExistingCount != 1 || len(res.Errors) != 0 {
		t.Errorf("race result = created %d existing %d errs %d, want 0/1/0", res.CreatedCount, res.ExistingCount, len(res.Errors))
	}
}

func TestAssignManyScopedFailure(t *testing.T) {
	scheduleID := uuid.New()
	known := uuid.New()
	store := newStubPanelistStore()
	resolver := &stubResolver{users: map[string]*userModel.UserModel{
		known.String(): {UserID: known},
	}}
	svc := NewPanelistService(store, resolver)

	res, err := svc.AssignMany(context.Background(), scheduleID, []string{known.String(), "bukan-staff"})
	if err != nil {
		t.Fatalf("AssignMany() error = %v (batch harus lanjut)", err)
	}
	if res.CreatedCount != 1 {
		t.Errorf("created = %d, want 1", res.CreatedCount)
	}
	if len(res.Errors) != 1 || res.Errors[0].Index != 1 {
		t.Fatalf("errors = %+v, want satu error di index 1", res.Errors)
	}
}

func TestAssignManyDuplicatesInOneBatchAbsorbed(t *testing.T) {
	scheduleID := uuid.New()
	staff := uuid.New()
	store := newStubPanelistStore()
	resolver := &stubResolver{users: map[string]*userModel.UserModel{
		staff.String(): {UserID: staff},
	}}
	svc := NewPanelistService(store, resolver)

	// staff yang sama dua kali dalam satu batch → satu created, satu existing
	res, err := svc.AssignMany(context.Background(), scheduleID, []string{staff.String(), staff.String()})
	if err != nil {
		t.Fatalf("AssignMany() error = %v", err)
	}
	if res.CreatedCount != 1 || res.ExistingCount != 1 || len(res.Errors) != 0 {
		t.Errorf("result = created %d existing %d errs %d, want 1/1/0", res.CreatedCount, res.ExistingCount, len(res.Errors))
	}
	if len(store.rows) != 1 {
		t.Errorf("rows = %d, want exactly 1", len(store.rows))
	}
}

func TestRemoveIdempotent(t *testing.T) {
	scheduleID := uuid.New()
	staff := uuid.New()
	store := newStubPanelistStore()
	svc := NewPanelistService(store, &stubResolver{})

	// hapus relasi yang tidak pernah ada → 0, bukan error
	n, err := svc.Remove(context.Background(), scheduleID, staff)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if n != 0 {
		t.Errorf("removed = %d, want 0", n)
	}

	store.rows[pairKey{scheduleID, staff}] = model.SchedulePanelistModel{
		SchedulePanelistScheduleID: scheduleID,
		SchedulePanelistStaffID:    staff,
	}
	n, err = svc.Remove(context.Background(), scheduleID, staff)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if n != 1 {
		t.Errorf("removed = %d, want 1", n)
	}
}
