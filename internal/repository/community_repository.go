package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{DB: db}
}

func (r *CommunityRepository) CreatePost(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *CommunityRepository) FindPostByID(id uint) (*model.Post, error) {
	var post model.Post
	err := r.DB.First(&post, id).Error
	return &post, err
}

func (r *CommunityRepository) ListPosts(page, limit int) ([]model.Post, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := r.DB.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *CommunityRepository) UpdatePost(post *model.Post) error {
	return r.DB.Save(post).Error
}

func (r *CommunityRepository) DeletePost(id uint) error {
	return r.DB.Delete(&model.Post{}, id).Error
}

func (r *CommunityRepository) IncrementPostViews(id uint) error {
	return r.DB.Model(&model.Post{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).
		Error
}

func (r *CommunityRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *CommunityRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("Answers").First(&question, id).Error
	return &question, err
}

func (r *CommunityRepository) ListQuestions(page, limit int) ([]model.Question, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Question{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []model.Question
	err := r.DB.Preload("Answers").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&questions).Error
	return questions, total, err
}

func (r *CommunityRepository) DeleteQuestion(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

func (r *CommunityRepository) CreateAnswer(answer *model.Answer) error {
	return r.DB.Create(answer).Error
}

func (r *CommunityRepository) DeleteAnswer(id uint) error {
	return r.DB.Delete(&model.Answer{}, id).Error
}
