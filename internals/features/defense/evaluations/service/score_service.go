// file: internals/features/defense/evaluations/service/score_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	model "sidangku_backend/internals/features/defense/evaluations/model"
)

// ScoreStore: capability interface storage nilai per kriteria.
type ScoreStore interface {
	ListByEvaluation(ctx context.Context, evaluationID uuid.UUID) ([]model.EvaluationScoreModel, error)
	FindPair(ctx context.Context, evaluationID, criterionID uuid.UUID) (*model.EvaluationScoreModel, error)
	Create(ctx context.Context, row *model.EvaluationScoreModel) error
	Save(ctx context.Context, row *model.EvaluationScoreModel) error
	DeletePair(ctx context.Context, evaluationID, criterionID uuid.UUID) (int64, error)
}

// ScoringService: store-level. Guard "evaluation terkunci" ada di LifecycleService,
// jangan panggil mutasi di sini langsung dari controller.
type ScoringService struct {
	Store ScoreStore
}

func NewScoringService(store ScoreStore) *ScoringService {
	return &ScoringService{Store: store}
}

func (s *ScoringService) ListByEvaluation(ctx context.Context, evaluationID uuid.UUID) ([]model.EvaluationScoreModel, error) {
	return s.Store.ListByEvaluation(ctx, evaluationID)
}

// Upsert: insert-or-update keyed (evaluation, criterion); last-write-wins,
// tidak ada merge parsial. Range min/max kriteria sengaja TIDAK dicek di sini
// (perilaku lenient dipertahankan; tampilan yang membatasi).
func (s *ScoringService) Upsert(ctx context.Context, evaluationID, criterionID uuid.UUID, score float64, comment *string) (*model.EvaluationScoreModel, error) {
	if !isFinite(score) {
		return nil, ErrScoreNotFinite
	}

	existing, err := s.Store.FindPair(ctx, evaluationID, criterionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.EvaluationScoreScore = score
		existing.EvaluationScoreComment = comment
		if err := s.Store.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	row := model.EvaluationScoreModel{
		EvaluationScoreEvaluationID: evaluationID,
		EvaluationScoreCriterionID:  criterionID,
		EvaluationScoreScore:        score,
		EvaluationScoreComment:      comment,
	}
	if err := s.Store.Create(ctx, &row); err != nil {
		if IsUniqueViolation(err) {
			// race dengan writer lain: baris keburu ada → re-fetch lalu timpa (last-write-wins)
			again, ferr := s.Store.FindPair(ctx, evaluationID, criterionID)
			if ferr != nil {
				return nil, ferr
			}
			if again == nil {
				return nil, err
			}
			again.EvaluationScoreScore = score
			again.EvaluationScoreComment = comment
			if serr := s.Store.Save(ctx, again); serr != nil {
				return nil, serr
			}
			return again, nil
		}
		return nil, err
	}
	return &row, nil
}

type BulkScoreItem struct {
	CriterionID string   `json:"criterion_id"`
	Score       *float64 `json:"score"`
	Comment     *string  `json:"comment,omitempty"`
}

type BulkUpsertResult struct {
	Items  []model.EvaluationScoreModel `json:"items"`
	Errors []ItemError                  `json:"errors,omitempty"`
}

// BulkUpsert: item di-upsert paralel (dibatasi), jalan terus melewati
// kegagalan per item (multi-status), tidak pernah membatalkan item saudaranya.
// Hasil dan error dikembalikan sesuai urutan input.
func (s *ScoringService) BulkUpsert(ctx context.Context, evaluationID uuid.UUID, items []BulkScoreItem) (*BulkUpsertResult, error) {
	type bulkSlot struct {
		row  *model.EvaluationScoreModel
		fail *ItemError
	}
	slots := make([]bulkSlot, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range items {
		i, it := i, items[i]
		g.Go(func() error {
			criterionID, err := uuid.Parse(strings.TrimSpace(it.CriterionID))
			if err != nil {
				slots[i].fail = &ItemError{Index: i, Reason: fmt.Sprintf("criterion_id %q tidak valid", it.CriterionID)}
				return nil
			}
			if it.Score == nil || !isFinite(*it.Score) {
				slots[i].fail = &ItemError{Index: i, Reason: "score wajib angka finite"}
				return nil
			}
			row, err := s.Upsert(gctx, evaluationID, criterionID, *it.Score, it.Comment)
			if err != nil {
				reason := err.Error()
				if IsForeignKeyViolation(err) {
					reason = fmt.Sprintf("criterion %s tidak ditemukan", criterionID)
				}
				slots[i].fail = &ItemError{Index: i, Reason: reason}
				return nil
			}
			slots[i].row = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &BulkUpsertResult{Items: []model.EvaluationScoreModel{}}
	for _, sl := range slots {
		if sl.fail != nil {
			res.Errors = append(res.Errors, *sl.fail)
			continue
		}
		if sl.row != nil {
			res.Items = append(res.Items, *sl.row)
		}
	}
	return res, nil
}

// Delete: hapus nilai; pasangan yang tidak ada bukan error, dilaporkan 0.
func (s *ScoringService) Delete(ctx context.Context, evaluationID, criterionID uuid.UUID) (int64, error) {
	return s.Store.DeletePair(ctx, evaluationID, criterionID)
}
