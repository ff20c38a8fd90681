package service

import (
	"context"

	"lms_backend/internal/repository"
	"lms_backend/internal/structure"
)

// DashboardService computes the admin overview numbers by walking the
// canonical course structures.
type DashboardService struct {
	CourseRepo   *repository.CourseRepository
	UserRepo     *repository.UserRepository
	PurchaseRepo *repository.PurchaseRepository
	Courses      *CourseService
}

func NewDashboardService(courseRepo *repository.CourseRepository, userRepo *repository.UserRepository, purchaseRepo *repository.PurchaseRepository, courses *CourseService) *DashboardService {
	return &DashboardService{
		CourseRepo:   courseRepo,
		UserRepo:     userRepo,
		PurchaseRepo: purchaseRepo,
		Courses:      courses,
	}
}

type Overview struct {
	Users        int64   `json:"users"`
	Courses      int64   `json:"courses"`
	TotalRevenue float64 `json:"totalRevenue"`
}

func (s *DashboardService) GetOverview(ctx context.Context) (*Overview, error) {
	users, err := s.UserRepo.Count()
	if err != nil {
		return nil, err
	}
	courses, err := s.CourseRepo.Count()
	if err != nil {
		return nil, err
	}
	revenue, err := s.PurchaseRepo.TotalRevenue()
	if err != nil {
		return nil, err
	}

	return &Overview{
		Users:        users,
		Courses:      courses,
		TotalRevenue: revenue,
	}, nil
}

type CourseStats struct {
	CourseID     uint    `json:"courseId"`
	Title        string  `json:"title"`
	TotalLessons int     `json:"totalLessons"`
	TotalVideos  int     `json:"totalVideos"`
	TotalPDFs    int     `json:"totalPdfs"`
	TotalPrice   float64 `json:"totalPrice"`
	Purchases    int64   `json:"purchases"`
}

func (s *DashboardService) GetCourseStats(ctx context.Context, courseID uint) (*CourseStats, error) {
	view, err := s.Courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	purchases, err := s.PurchaseRepo.CountByCourse(courseID)
	if err != nil {
		return nil, err
	}

	return &CourseStats{
		CourseID:     courseID,
		Title:        view.Course.Title,
		TotalLessons: view.TotalLessons,
		TotalVideos:  view.TotalVideos,
		TotalPDFs:    view.TotalPDFs,
		TotalPrice:   view.TotalPrice,
		Purchases:    purchases,
	}, nil
}

// GetAllCourseStats walks every course; the structure traversal is cheap, the
// dominant cost is the course rows themselves.
func (s *DashboardService) GetAllCourseStats(ctx context.Context) ([]CourseStats, error) {
	courses, _, err := s.CourseRepo.List(repository.CourseFilter{})
	if err != nil {
		return nil, err
	}

	stats := make([]CourseStats, 0, len(courses))
	for i := range courses {
		items, err := structure.Normalize(&courses[i])
		if err != nil {
			return nil, err
		}
		purchases, err := s.PurchaseRepo.CountByCourse(courses[i].ID)
		if err != nil {
			return nil, err
		}
		stats = append(stats, CourseStats{
			CourseID:     courses[i].ID,
			Title:        courses[i].Title,
			TotalLessons: structure.TotalLessons(items),
			TotalVideos:  structure.TotalVideos(items),
			TotalPDFs:    structure.TotalPDFs(items),
			TotalPrice:   structure.TotalPrice(items),
			Purchases:    purchases,
		})
	}
	return stats, nil
}
