package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
)

type TaxonomyService struct {
	TaxonomyRepo *repository.TaxonomyRepository
}

func NewTaxonomyService(taxonomyRepo *repository.TaxonomyRepository) *TaxonomyService {
	return &TaxonomyService{TaxonomyRepo: taxonomyRepo}
}

func (s *TaxonomyService) ListSubjects() ([]model.Subject, error) {
	return s.TaxonomyRepo.ListSubjects()
}

func (s *TaxonomyService) CreateSubject(name string) (*model.Subject, error) {
	subject := &model.Subject{Name: name}
	err := s.TaxonomyRepo.CreateSubject(subject)
	return subject, err
}

func (s *TaxonomyService) DeleteSubject(id uint) error {
	return s.TaxonomyRepo.DeleteSubject(id)
}

func (s *TaxonomyService) ListStages() ([]model.Stage, error) {
	return s.TaxonomyRepo.ListStages()
}

func (s *TaxonomyService) CreateStage(name string) (*model.Stage, error) {
	stage := &model.Stage{Name: name}
	err := s.TaxonomyRepo.CreateStage(stage)
	return stage, err
}

func (s *TaxonomyService) DeleteStage(id uint) error {
	return s.TaxonomyRepo.DeleteStage(id)
}
