package service

import (
	"testing"

	"lms_backend/internal/access"
	"lms_backend/internal/model"
	"lms_backend/internal/structure"
)

func playerFixture(t *testing.T) []model.StructureItem {
	t.Helper()
	course := &model.Course{
		Units: []model.Unit{
			{Title: "Unit", Lessons: []model.Lesson{
				{ID: "free", Title: "Free lesson"},
				{ID: "paid", Title: "Paid lesson", Price: 25, PaidStudents: []uint{42}},
			}},
		},
		DirectLessons: []model.Lesson{
			{ID: "direct", Title: "Direct paid", Price: 10},
		},
	}
	items, err := structure.Normalize(course)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	return items
}

func TestAnnotateAccess_CoversEveryLesson(t *testing.T) {
	s := &LessonService{}
	items := playerFixture(t)

	decisions := s.AnnotateAccess(items, access.Guest())
	if len(decisions) != 3 {
		t.Fatalf("expected 3 decisions, got %d", len(decisions))
	}
	if !decisions["free"].Allowed {
		t.Fatalf("free lesson should be open to guests")
	}
	if decisions["paid"].Reason != access.ReasonRequiresAuth {
		t.Fatalf("paid lesson should require auth for guests, got %+v", decisions["paid"])
	}
}

func TestAnnotateAccess_PurchaserUnlocksOnlyOwnedLessons(t *testing.T) {
	s := &LessonService{}
	items := playerFixture(t)

	decisions := s.AnnotateAccess(items, access.User(42, 0))
	if !decisions["paid"].Allowed || !decisions["paid"].Purchased {
		t.Fatalf("purchaser should see the owned lesson, got %+v", decisions["paid"])
	}
	if decisions["direct"].Allowed {
		t.Fatalf("unowned paid lesson must stay locked")
	}
	if decisions["direct"].Reason != access.ReasonInsufficientBalance {
		t.Fatalf("broke purchaser should be told to top up, got %+v", decisions["direct"])
	}
}

func TestFindLesson_NestedAndTopLevel(t *testing.T) {
	items := playerFixture(t)

	if l := findLesson(items, "paid"); l == nil || l.Title != "Paid lesson" {
		t.Fatalf("nested lesson not found")
	}
	if l := findLesson(items, "direct"); l == nil || l.Title != "Direct paid" {
		t.Fatalf("top-level lesson not found")
	}
	if l := findLesson(items, "ghost"); l != nil {
		t.Fatalf("missing lesson should yield nil")
	}
}
