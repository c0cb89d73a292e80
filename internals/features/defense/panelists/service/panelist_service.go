// file: internals/features/defense/panelists/service/panelist_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	model "sidangku_backend/internals/features/defense/panelists/model"
	userModel "sidangku_backend/internals/features/users/users/model"
	userService "sidangku_backend/internals/features/users/users/service"
)

/* =========================
   Store & collaborator contracts
   ========================= */

// Store: capability interface relasi schedule↔staff (tanpa feature-probing runtime).
type Store interface {
	ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]model.SchedulePanelistModel, error)
	ListByStaff(ctx context.Context, staffID uuid.UUID) ([]model.SchedulePanelistModel, error)
	FindPair(ctx context.Context, scheduleID, staffID uuid.UUID) (*model.SchedulePanelistModel, error)
	Create(ctx context.Context, row *model.SchedulePanelistModel) error
	DeletePair(ctx context.Context, scheduleID, staffID uuid.UUID) (int64, error)
}

// UserResolver: Identity Resolver (collaborator).
type UserResolver interface {
	ResolveWithCache(ctx context.Context, cache *userService.ResolverCache, candidate string) (*userModel.UserModel, error)
}

/* =========================
   Results
   ========================= */

// ItemError: kegagalan satu item dalam batch, diberi index + alasan.
type ItemError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type AssignManyResult struct {
	Created       []model.SchedulePanelistModel `json:"created"`
	CreatedCount  int                           `json:"created_count"`
	ExistingCount int                           `json:"existing_count"`
	Errors        []ItemError                   `json:"errors,omitempty"`
}

/* =========================
   Service
   ========================= */

type PanelistService struct {
	Store    Store
	Resolver UserResolver
}

func NewPanelistService(store Store, resolver UserResolver) *PanelistService {
	return &PanelistService{Store: store, Resolver: resolver}
}

func (s *PanelistService) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]model.SchedulePanelistModel, error) {
	return s.Store.ListBySchedule(ctx, scheduleID)
}

func (s *PanelistService) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]model.SchedulePanelistModel, error) {
	return s.Store.ListByStaff(ctx, staffID)
}

// AssignMany: tugaskan banyak staff sekaligus ke satu jadwal.
//   - Duplikat diserap, bukan ditolak (invariant: satu baris per pasangan).
//   - Unique violation karena race dianggap sukses: dihitung "existing".
//   - Staff id yang tidak resolve → gagal scoped per item, batch jalan terus.
//
// Resolve jalan berurutan (cache resolver dipakai bersama satu batch), lalu
// write per item di-fan-out paralel. Hasil kembali sesuai urutan input.
func (s *PanelistService) AssignMany(ctx context.Context, scheduleID uuid.UUID, staffIDs []string) (*AssignManyResult, error) {
	type assignSlot struct {
		created  *model.SchedulePanelistModel
		existing bool
		fail     *ItemError
	}
	slots := make([]assignSlot, len(staffIDs))
	resolved := make([]uuid.UUID, len(staffIDs))

	cache := userService.NewResolverCache() // lifecycle cache: satu batch saja
	for i, raw := range staffIDs {
		u, err := s.Resolver.ResolveWithCache(ctx, cache, raw)
		if err != nil {
			if errors.Is(err, userService.ErrUserNotFound) {
				slots[i].fail = &ItemError{Index: i, Reason: fmt.Sprintf("staff %q tidak ditemukan", raw)}
				continue
			}
			return nil, err
		}
		resolved[i] = u.UserID
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range staffIDs {
		if slots[i].fail != nil {
			continue
		}
		i, raw, staffID := i, staffIDs[i], resolved[i]
		g.Go(func() error {
			existing, err := s.Store.FindPair(gctx, scheduleID, staffID)
			if err != nil {
				return err
			}
			if existing != nil {
				slots[i].existing = true
				return nil
			}

			row := model.SchedulePanelistModel{
				SchedulePanelistScheduleID: scheduleID,
				SchedulePanelistStaffID:    staffID,
			}
			if err := s.Store.Create(gctx, &row); err != nil {
				switch {
				case IsUniqueViolation(err):
					// race dengan writer lain → baris sudah ada, hitung existing
					slots[i].existing = true
					return nil
				case IsForeignKeyViolation(err):
					// lolos format tapi referensinya keburu dihapus
					slots[i].fail = &ItemError{Index: i, Reason: fmt.Sprintf("referensi staff %q tidak valid", raw)}
					return nil
				default:
					return err
				}
			}
			slots[i].created = &row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &AssignManyResult{Created: []model.SchedulePanelistModel{}}
	for _, sl := range slots {
		switch {
		case sl.fail != nil:
			res.Errors = append(res.Errors, *sl.fail)
		case sl.existing:
			res.ExistingCount++
		case sl.created != nil:
			res.Created = append(res.Created, *sl.created)
			res.CreatedCount++
		}
	}
	return res, nil
}

// Remove: hapus relasi; pasangan yang tidak ada bukan error, dilaporkan 0.
func (s *PanelistService) Remove(ctx context.Context, scheduleID, staffID uuid.UUID) (int64, error) {
	return s.Store.DeletePair(ctx, scheduleID, staffID)
}
