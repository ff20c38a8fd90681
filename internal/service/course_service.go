package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/structure"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const courseCacheTTL = 5 * time.Minute

// CourseService owns course authoring: every edit goes through the structure
// package so the persisted form is always the canonical unified sequence,
// with the legacy fields maintained as a read mirror for old clients.
type CourseService struct {
	CourseRepo *repository.CourseRepository
	Redis      *redis.Client
	Cfg        *config.Config
}

func NewCourseService(courseRepo *repository.CourseRepository, rdb *redis.Client, cfg *config.Config) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		Redis:      rdb,
		Cfg:        cfg,
	}
}

// CourseView is the read model handed to the player and the admin editor:
// the course row plus its canonical structure and the derived totals.
type CourseView struct {
	Course       model.Course          `json:"course"`
	Structure    []model.StructureItem `json:"structure"`
	TotalLessons int                   `json:"totalLessons"`
	TotalVideos  int                   `json:"totalVideos"`
	TotalPDFs    int                   `json:"totalPdfs"`
	TotalPrice   float64               `json:"totalPrice"`
}

func courseCacheKey(id uint) string {
	return fmt.Sprintf("course:%d", id)
}

func (s *CourseService) CreateCourse(ctx context.Context, course *model.Course) error {
	if course.Thumbnail.SecureURL == "" {
		course.Thumbnail = model.FileRef{
			PublicID:  util.DefaultThumbnailPublicID,
			SecureURL: util.DefaultThumbnailURL,
		}
	}

	items, err := structure.Normalize(course)
	if err != nil {
		return err
	}
	applyStructure(course, items)

	return s.CourseRepo.Create(course)
}

func (s *CourseService) GetCourse(ctx context.Context, id uint) (*CourseView, error) {
	if cached, err := s.Redis.Get(ctx, courseCacheKey(id)).Result(); err == nil {
		var view CourseView
		if err := json.Unmarshal([]byte(cached), &view); err == nil {
			return &view, nil
		}
	}

	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	items, err := structure.Normalize(course)
	if err != nil {
		return nil, err
	}

	view := &CourseView{
		Course:       *course,
		Structure:    items,
		TotalLessons: structure.TotalLessons(items),
		TotalVideos:  structure.TotalVideos(items),
		TotalPDFs:    structure.TotalPDFs(items),
		TotalPrice:   structure.TotalPrice(items),
	}

	if payload, err := json.Marshal(view); err == nil {
		if err := s.Redis.Set(ctx, courseCacheKey(id), payload, courseCacheTTL).Err(); err != nil {
			logger.Log.Warn("course cache set failed", zap.Uint("course", id), zap.Error(err))
		}
	}

	return view, nil
}

func (s *CourseService) ListCourses(filter repository.CourseFilter) ([]model.Course, int64, error) {
	return s.CourseRepo.List(filter)
}

// UpdateCourseMeta edits title/description/taxonomy/thumbnail without
// touching the content structure.
func (s *CourseService) UpdateCourseMeta(ctx context.Context, id uint, update func(*model.Course)) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	update(course)
	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return course, nil
}

func (s *CourseService) DeleteCourse(ctx context.Context, id uint) error {
	if err := s.CourseRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// editStructure loads the course, normalizes it, applies one structure edit
// and saves the result. The save replaces the whole document: concurrent
// editors race and the later save wins.
func (s *CourseService) editStructure(ctx context.Context, courseID uint, edit func([]model.StructureItem) ([]model.StructureItem, error)) ([]model.StructureItem, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	items, err := structure.Normalize(course)
	if err != nil {
		return nil, err
	}

	items, err = edit(items)
	if err != nil {
		return nil, err
	}

	applyStructure(course, items)
	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}
	s.invalidate(ctx, courseID)
	return items, nil
}

func (s *CourseService) AddStructureItem(ctx context.Context, courseID uint, typ model.ItemType, init structure.NewItem, insertAfter int) ([]model.StructureItem, error) {
	return s.editStructure(ctx, courseID, func(items []model.StructureItem) ([]model.StructureItem, error) {
		return structure.AddItem(items, typ, init, insertAfter)
	})
}

func (s *CourseService) AddLessonToUnit(ctx context.Context, courseID uint, unitID string, init structure.NewItem) ([]model.StructureItem, error) {
	return s.editStructure(ctx, courseID, func(items []model.StructureItem) ([]model.StructureItem, error) {
		return structure.AddLessonToUnit(items, unitID, init)
	})
}

func (s *CourseService) DeleteStructureItem(ctx context.Context, courseID uint, itemID string) ([]model.StructureItem, error) {
	return s.editStructure(ctx, courseID, func(items []model.StructureItem) ([]model.StructureItem, error) {
		return structure.DeleteItem(items, itemID)
	})
}

func (s *CourseService) DeleteLessonFromUnit(ctx context.Context, courseID uint, unitID string, lessonIndex int) ([]model.StructureItem, error) {
	return s.editStructure(ctx, courseID, func(items []model.StructureItem) ([]model.StructureItem, error) {
		return structure.DeleteLessonFromUnit(items, unitID, lessonIndex)
	})
}

func (s *CourseService) ReorderStructure(ctx context.Context, courseID uint, fromIndex, toIndex int) ([]model.StructureItem, error) {
	return s.editStructure(ctx, courseID, func(items []model.StructureItem) ([]model.StructureItem, error) {
		return structure.Reorder(items, fromIndex, toIndex)
	})
}

// ReplaceStructure swaps in a full structure from the authoring client, e.g.
// after a bulk drag-and-drop session. The incoming sequence is validated and
// normalized before it is persisted.
func (s *CourseService) ReplaceStructure(ctx context.Context, courseID uint, incoming []model.StructureItem) ([]model.StructureItem, error) {
	return s.editStructure(ctx, courseID, func([]model.StructureItem) ([]model.StructureItem, error) {
		draft := &model.Course{UnifiedStructure: incoming}
		return structure.Normalize(draft)
	})
}

// LessonPatch carries the editable lesson fields; nil pointers leave the
// field unchanged.
type LessonPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Duration    *float64
	Lecture     *string
	PDFs        *[]model.FileRef
	Videos      *[]model.FileRef
}

func (s *CourseService) UpdateLesson(ctx context.Context, courseID uint, lessonID string, patch LessonPatch) ([]model.StructureItem, error) {
	return s.editStructure(ctx, courseID, func(items []model.StructureItem) ([]model.StructureItem, error) {
		lesson := findLesson(items, lessonID)
		if lesson == nil {
			return nil, &structure.NotFoundError{Kind: "lesson", ID: lessonID}
		}
		if patch.Title != nil {
			lesson.Title = *patch.Title
		}
		if patch.Description != nil {
			lesson.Description = *patch.Description
		}
		if patch.Price != nil {
			lesson.Price = *patch.Price
		}
		if patch.Duration != nil {
			lesson.Duration = *patch.Duration
		}
		if patch.Lecture != nil {
			lesson.Lecture = *patch.Lecture
		}
		if patch.PDFs != nil {
			lesson.PDFs = *patch.PDFs
		}
		if patch.Videos != nil {
			lesson.Videos = *patch.Videos
		}
		return items, nil
	})
}

// UpdateUnit edits a unit's own fields (title, description, bundle price).
func (s *CourseService) UpdateUnit(ctx context.Context, courseID uint, unitID string, title, description *string, price *float64) ([]model.StructureItem, error) {
	return s.editStructure(ctx, courseID, func(items []model.StructureItem) ([]model.StructureItem, error) {
		for i := range items {
			if items[i].Type != model.ItemUnit || items[i].ID != unitID {
				continue
			}
			if title != nil {
				items[i].Unit.Title = *title
			}
			if description != nil {
				items[i].Unit.Description = *description
			}
			if price != nil {
				items[i].Unit.Price = *price
			}
			return items, nil
		}
		return nil, &structure.NotFoundError{Kind: "unit", ID: unitID}
	})
}

func (s *CourseService) invalidate(ctx context.Context, courseID uint) {
	if err := s.Redis.Del(ctx, courseCacheKey(courseID)).Err(); err != nil {
		logger.Log.Warn("course cache invalidation failed", zap.Uint("course", courseID), zap.Error(err))
	}
}

// applyStructure stores the canonical form and refreshes the legacy mirror.
func applyStructure(course *model.Course, items []model.StructureItem) {
	units, direct := structure.Denormalize(items)
	course.UnifiedStructure = items
	course.Units = units
	course.DirectLessons = direct
	course.StructureType = model.StructureUnified
}

// findLesson locates a lesson anywhere in the structure, nested or top-level.
func findLesson(items []model.StructureItem, lessonID string) *model.Lesson {
	for i := range items {
		switch items[i].Type {
		case model.ItemUnit:
			if items[i].Unit == nil {
				continue
			}
			for j := range items[i].Unit.Lessons {
				if items[i].Unit.Lessons[j].ID == lessonID {
					return &items[i].Unit.Lessons[j]
				}
			}
		case model.ItemLesson:
			if items[i].Lesson != nil && items[i].Lesson.ID == lessonID {
				return items[i].Lesson
			}
		}
	}
	return nil
}
