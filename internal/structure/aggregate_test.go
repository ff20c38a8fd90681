package structure

import (
	"testing"

	"lms_backend/internal/model"
)

func aggregateFixture(t *testing.T) []model.StructureItem {
	t.Helper()
	course := &model.Course{
		Units: []model.Unit{
			{Title: "Unit A", Price: 50, Lessons: []model.Lesson{
				{Title: "A1", Price: 10, Lecture: "https://videos.example/a1"},
				{Title: "A2", PDFs: []model.FileRef{{PublicID: "a2", SecureURL: "https://cdn/a2.pdf"}}},
				{Title: "A3", Price: 20},
			}},
			{Title: "Unit B", Lessons: []model.Lesson{
				{Title: "B1", Videos: []model.FileRef{{PublicID: "b1", SecureURL: "https://cdn/b1.mp4"}}},
				{Title: "B2"},
			}},
		},
		DirectLessons: []model.Lesson{
			{Title: "Intro", Price: 5, Lecture: "https://videos.example/intro", PDFs: []model.FileRef{{PublicID: "i", SecureURL: "https://cdn/i.pdf"}}},
		},
	}
	items, err := Normalize(course)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	return items
}

func TestTotalLessons(t *testing.T) {
	items := aggregateFixture(t)
	if got := TotalLessons(items); got != 6 {
		t.Fatalf("TotalLessons: got %d want 6", got)
	}
}

func TestTotalVideos(t *testing.T) {
	items := aggregateFixture(t)
	// A1 (lecture), B1 (extra video), Intro (lecture)
	if got := TotalVideos(items); got != 3 {
		t.Fatalf("TotalVideos: got %d want 3", got)
	}
}

func TestTotalPDFs(t *testing.T) {
	items := aggregateFixture(t)
	// A2 and Intro
	if got := TotalPDFs(items); got != 2 {
		t.Fatalf("TotalPDFs: got %d want 2", got)
	}
}

func TestTotalPrice_IncludesUnitBundlePrices(t *testing.T) {
	items := aggregateFixture(t)
	// unit bundle 50 + lessons 10 + 20 + 5; bundle and nested prices both count
	if got := TotalPrice(items); got != 85 {
		t.Fatalf("TotalPrice: got %v want 85", got)
	}
}

func TestAggregates_EmptyStructure(t *testing.T) {
	if TotalLessons(nil) != 0 || TotalVideos(nil) != 0 || TotalPDFs(nil) != 0 || TotalPrice(nil) != 0 {
		t.Fatalf("aggregates over nil structure must be zero")
	}
}
