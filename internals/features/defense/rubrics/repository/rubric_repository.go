// file: internals/features/defense/rubrics/repository/rubric_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "sidangku_backend/internals/features/defense/rubrics/model"
)

type RubricRepository struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *RubricRepository {
	return &RubricRepository{DB: db}
}

// FindActiveTemplate: template aktif beserta kriterianya terurut position.
// (nil, nil) kalau belum ada yang diaktifkan.
func (r *RubricRepository) FindActiveTemplate(ctx context.Context) (*model.RubricTemplateModel, error) {
	var row model.RubricTemplateModel
	err := r.DB.WithContext(ctx).
		Where("rubric_template_is_active = ?", true).
		Preload("Criteria", func(db *gorm.DB) *gorm.DB {
			return db.Order("rubric_criterion_position ASC")
		}).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *RubricRepository) FindTemplateByID(ctx context.Context, id uuid.UUID) (*model.RubricTemplateModel, error) {
	var row model.RubricTemplateModel
	err := r.DB.WithContext(ctx).
		Where("rubric_template_id = ?", id).
		Preload("Criteria", func(db *gorm.DB) *gorm.DB {
			return db.Order("rubric_criterion_position ASC")
		}).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *RubricRepository) ListTemplates(ctx context.Context) ([]model.RubricTemplateModel, error) {
	var rows []model.RubricTemplateModel
	err := r.DB.WithContext(ctx).
		Order("rubric_template_created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ActiveCriteria: kriteria milik template aktif, terurut position.
// Template belum ada → slice kosong, bukan error (scoring tetap jalan).
func (r *RubricRepository) ActiveCriteria(ctx context.Context) ([]model.RubricCriterionModel, error) {
	var rows []model.RubricCriterionModel
	err := r.DB.WithContext(ctx).
		Joins("JOIN rubric_templates ON rubric_templates.rubric_template_id = rubric_criteria.rubric_criterion_template_id").
		Where("rubric_templates.rubric_template_is_active = ? AND rubric_templates.rubric_template_deleted_at IS NULL", true).
		Order("rubric_criteria.rubric_criterion_position ASC").
		Find(&rows).Error
	return rows, err
}

func (r *RubricRepository) ListCriteriaByTemplate(ctx context.Context, templateID uuid.UUID) ([]model.RubricCriterionModel, error) {
	var rows []model.RubricCriterionModel
	err := r.DB.WithContext(ctx).
		Where("rubric_criterion_template_id = ?", templateID).
		Order("rubric_criterion_position ASC").
		Find(&rows).Error
	return rows, err
}

// CreateTemplateWithCriteria: template + kriteria dalam satu transaksi.
// Kalau is_active true, template aktif sebelumnya dinonaktifkan dulu
// supaya maksimal satu template aktif.
func (r *RubricRepository) CreateTemplateWithCriteria(ctx context.Context, tpl *model.RubricTemplateModel, criteria []model.RubricCriterionModel) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tpl.RubricTemplateIsActive {
			if err := tx.Model(&model.RubricTemplateModel{}).
				Where("rubric_template_is_active = ?", true).
				Update("rubric_template_is_active", false).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(tpl).Error; err != nil {
			return err
		}
		for i := range criteria {
			criteria[i].RubricCriterionTemplateID = tpl.RubricTemplateID
		}
		if len(criteria) > 0 {
			if err := tx.Create(&criteria).Error; err != nil {
				return err
			}
		}
		tpl.Criteria = criteria
		return nil
	})
}

// SetActive: aktifkan satu template, nonaktifkan sisanya.
func (r *RubricRepository) SetActive(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.RubricTemplateModel{}).
			Where("rubric_template_is_active = ?", true).
			Update("rubric_template_is_active", false).Error; err != nil {
			return err
		}
		res := tx.Model(&model.RubricTemplateModel{}).
			Where("rubric_template_id = ?", id).
			Update("rubric_template_is_active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
