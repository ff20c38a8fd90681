package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type TaxonomyRepository struct {
	DB *gorm.DB
}

func NewTaxonomyRepository(db *gorm.DB) *TaxonomyRepository {
	return &TaxonomyRepository{DB: db}
}

func (r *TaxonomyRepository) ListSubjects() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Order("name").Find(&subjects).Error
	return subjects, err
}

func (r *TaxonomyRepository) CreateSubject(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *TaxonomyRepository) DeleteSubject(id uint) error {
	return r.DB.Delete(&model.Subject{}, id).Error
}

func (r *TaxonomyRepository) ListStages() ([]model.Stage, error) {
	var stages []model.Stage
	err := r.DB.Order("name").Find(&stages).Error
	return stages, err
}

func (r *TaxonomyRepository) CreateStage(stage *model.Stage) error {
	return r.DB.Create(stage).Error
}

func (r *TaxonomyRepository) DeleteStage(id uint) error {
	return r.DB.Delete(&model.Stage{}, id).Error
}
