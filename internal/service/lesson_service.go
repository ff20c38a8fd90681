package service

import (
	"context"

	"lms_backend/internal/access"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/structure"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"
)

// LessonService serves lesson content behind the access resolver: gated
// fields (lecture, videos, PDFs) are stripped from responses the actor may
// not see.
type LessonService struct {
	Courses  *CourseService
	UserRepo *repository.UserRepository
}

func NewLessonService(courses *CourseService, userRepo *repository.UserRepository) *LessonService {
	return &LessonService{
		Courses:  courses,
		UserRepo: userRepo,
	}
}

// ActorFromClaims maps the request's JWT claims onto an access actor. Missing
// or unresolvable claims become a guest, so broken tokens never unlock
// anything.
func (s *LessonService) ActorFromClaims(claims *util.Claims) access.Actor {
	if claims == nil {
		return access.Guest()
	}
	if claims.Role == model.Admin {
		return access.Admin(claims.UserID)
	}
	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return access.Guest()
	}
	return access.User(user.ID, user.WalletBalance)
}

// LessonContent is the player payload for one lesson. When access is denied
// the gated fields are empty and Decision tells the client which prompt to
// render (login, purchase or top-up).
type LessonContent struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       float64         `json:"price"`
	Duration    float64         `json:"duration,omitempty"`
	Lecture     string          `json:"lecture,omitempty"`
	PDFs        []model.FileRef `json:"pdfs,omitempty"`
	Videos      []model.FileRef `json:"videos,omitempty"`
	Views       int64           `json:"views"`
	Decision    access.Decision `json:"access"`
}

func (s *LessonService) GetLessonContent(ctx context.Context, courseID uint, lessonID string, actor access.Actor) (*LessonContent, error) {
	view, err := s.Courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	lesson := findLesson(view.Structure, lessonID)
	if lesson == nil {
		return nil, util.ErrLessonNotFound
	}

	decision := access.CanAccess(lesson, actor)
	content := &LessonContent{
		ID:          lesson.ID,
		Title:       lesson.Title,
		Description: lesson.Description,
		Price:       lesson.Price,
		Duration:    lesson.Duration,
		Decision:    decision,
	}

	if decision.Allowed {
		content.Lecture = lesson.Lecture
		content.PDFs = lesson.PDFs
		content.Videos = lesson.Videos
		views, err := s.Courses.Redis.Incr(ctx, lessonViewKey(lesson.ID)).Result()
		if err == nil {
			content.Views = views
		}
	} else {
		monitoring.AccessDenials.WithLabelValues(decision.Reason).Inc()
	}

	return content, nil
}

func lessonViewKey(lessonID string) string {
	return "lesson:views:" + lessonID
}

// AnnotateAccess computes the per-lesson access decision for a whole course,
// keyed by lesson id, so the player can lock/unlock rows in one pass.
func (s *LessonService) AnnotateAccess(items []model.StructureItem, actor access.Actor) map[string]access.Decision {
	decisions := make(map[string]access.Decision, structure.TotalLessons(items))
	walk := func(l *model.Lesson) {
		decisions[l.ID] = access.CanAccess(l, actor)
	}
	for i := range items {
		switch items[i].Type {
		case model.ItemUnit:
			if items[i].Unit == nil {
				continue
			}
			for j := range items[i].Unit.Lessons {
				walk(&items[i].Unit.Lessons[j])
			}
		case model.ItemLesson:
			if items[i].Lesson != nil {
				walk(items[i].Lesson)
			}
		}
	}
	return decisions
}
