package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// CommunityService covers the blog and the Q&A section.
type CommunityService struct {
	CommunityRepo *repository.CommunityRepository
}

func NewCommunityService(communityRepo *repository.CommunityRepository) *CommunityService {
	return &CommunityService{CommunityRepo: communityRepo}
}

func (s *CommunityService) CreatePost(post *model.Post) error {
	return s.CommunityRepo.CreatePost(post)
}

func (s *CommunityService) GetPost(id uint) (*model.Post, error) {
	post, err := s.CommunityRepo.FindPostByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	s.CommunityRepo.IncrementPostViews(id)
	return post, nil
}

func (s *CommunityService) ListPosts(page, limit int) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.CommunityRepo.ListPosts(page, limit)
}

func (s *CommunityService) UpdatePost(id uint, actor *util.Claims, title, content string) (*model.Post, error) {
	post, err := s.CommunityRepo.FindPostByID(id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.UserID && actor.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	if title != "" {
		post.Title = title
	}
	if content != "" {
		post.Content = content
	}
	if err := s.CommunityRepo.UpdatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *CommunityService) SetPostImage(id uint, actor *util.Claims, image model.FileRef) (*model.Post, error) {
	post, err := s.CommunityRepo.FindPostByID(id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.UserID && actor.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	post.Image = image
	if err := s.CommunityRepo.UpdatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *CommunityService) DeletePost(id uint, actor *util.Claims) error {
	post, err := s.CommunityRepo.FindPostByID(id)
	if err != nil {
		return err
	}
	if post.AuthorID != actor.UserID && actor.Role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.CommunityRepo.DeletePost(id)
}

func (s *CommunityService) CreateQuestion(question *model.Question) error {
	return s.CommunityRepo.CreateQuestion(question)
}

func (s *CommunityService) GetQuestion(id uint) (*model.Question, error) {
	return s.CommunityRepo.FindQuestionByID(id)
}

func (s *CommunityService) ListQuestions(page, limit int) ([]model.Question, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.CommunityRepo.ListQuestions(page, limit)
}

func (s *CommunityService) AnswerQuestion(answer *model.Answer) error {
	if _, err := s.CommunityRepo.FindQuestionByID(answer.QuestionID); err != nil {
		return err
	}
	return s.CommunityRepo.CreateAnswer(answer)
}

func (s *CommunityService) DeleteQuestion(id uint, actor *util.Claims) error {
	question, err := s.CommunityRepo.FindQuestionByID(id)
	if err != nil {
		return err
	}
	if question.AuthorID != actor.UserID && actor.Role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.CommunityRepo.DeleteQuestion(id)
}
