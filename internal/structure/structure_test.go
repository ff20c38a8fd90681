package structure

import (
	"errors"
	"testing"

	"lms_backend/internal/model"
)

func legacyCourse() *model.Course {
	return &model.Course{
		StructureType: model.StructureLegacy,
		Units: []model.Unit{
			{Title: "Algebra", Lessons: []model.Lesson{
				{Title: "Equations"},
				{Title: "Inequalities"},
				{Title: "Polynomials"},
			}},
			{Title: "Geometry", Lessons: []model.Lesson{
				{Title: "Triangles"},
				{Title: "Circles"},
			}},
		},
		DirectLessons: []model.Lesson{
			{Title: "Orientation"},
		},
	}
}

func collectIDs(items []model.StructureItem) []string {
	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
		if it.Unit != nil {
			for _, l := range it.Unit.Lessons {
				ids = append(ids, l.ID)
			}
		}
	}
	return ids
}

func TestNormalize_SynthesizesFromLegacyFields(t *testing.T) {
	items, err := Normalize(legacyCourse())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Type != model.ItemUnit || items[0].Unit.Title != "Algebra" {
		t.Fatalf("item 0 should be the Algebra unit, got %+v", items[0])
	}
	if items[1].Type != model.ItemUnit || items[1].Unit.Title != "Geometry" {
		t.Fatalf("item 1 should be the Geometry unit, got %+v", items[1])
	}
	if items[2].Type != model.ItemLesson || items[2].Lesson.Title != "Orientation" {
		t.Fatalf("item 2 should be the Orientation lesson, got %+v", items[2])
	}
}

func TestNormalize_EveryIDUniqueAndNonEmpty(t *testing.T) {
	items, err := Normalize(legacyCourse())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	seen := map[string]bool{}
	for _, id := range collectIDs(items) {
		if id == "" {
			t.Fatalf("found empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if len(seen) != 8 { // 2 units + 5 nested + 1 direct
		t.Fatalf("expected 8 distinct ids, got %d", len(seen))
	}
}

func TestNormalize_OrderMatchesIndex(t *testing.T) {
	items, err := Normalize(legacyCourse())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	for i, it := range items {
		if it.Order != i {
			t.Fatalf("item %d has order %d", i, it.Order)
		}
	}
}

func TestNormalize_UnifiedAuthoritativeOverLegacy(t *testing.T) {
	course := legacyCourse()
	course.StructureType = model.StructureUnified
	course.UnifiedStructure = []model.StructureItem{
		{Type: model.ItemLesson, Lesson: &model.Lesson{ID: "l1", Title: "Only lesson"}},
	}

	items, err := Normalize(course)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("unified form must win over stale legacy fields, got %d items", len(items))
	}
	if items[0].ID != "l1" || items[0].Lesson.Title != "Only lesson" {
		t.Fatalf("unexpected item %+v", items[0])
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first, err := Normalize(legacyCourse())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	course := &model.Course{UnifiedStructure: first}
	second, err := Normalize(course)
	if err != nil {
		t.Fatalf("re-Normalize: %v", err)
	}

	firstIDs := collectIDs(first)
	secondIDs := collectIDs(second)
	if len(firstIDs) != len(secondIDs) {
		t.Fatalf("id count changed: %d vs %d", len(firstIDs), len(secondIDs))
	}
	for i := range firstIDs {
		if firstIDs[i] != secondIDs[i] {
			t.Fatalf("id churn at position %d: %q vs %q", i, firstIDs[i], secondIDs[i])
		}
	}
	for i := range second {
		if second[i].Order != first[i].Order || second[i].Type != first[i].Type {
			t.Fatalf("item %d changed across re-normalization", i)
		}
	}
}

func TestNormalize_RoundTripPreservesContent(t *testing.T) {
	original := legacyCourse()
	items, err := Normalize(original)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	units, direct := Denormalize(items)

	if len(units) != len(original.Units) {
		t.Fatalf("unit count: got %d want %d", len(units), len(original.Units))
	}
	for i, u := range units {
		if u.Title != original.Units[i].Title {
			t.Fatalf("unit %d title: got %q want %q", i, u.Title, original.Units[i].Title)
		}
		if len(u.Lessons) != len(original.Units[i].Lessons) {
			t.Fatalf("unit %d lesson count: got %d want %d", i, len(u.Lessons), len(original.Units[i].Lessons))
		}
		for j, l := range u.Lessons {
			if l.Title != original.Units[i].Lessons[j].Title {
				t.Fatalf("unit %d lesson %d title: got %q want %q", i, j, l.Title, original.Units[i].Lessons[j].Title)
			}
		}
	}
	if len(direct) != 1 || direct[0].Title != "Orientation" {
		t.Fatalf("direct lessons not preserved: %+v", direct)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	course := legacyCourse()
	if _, err := Normalize(course); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if course.Units[0].ID != "" || course.Units[0].Lessons[0].ID != "" {
		t.Fatalf("input course was mutated")
	}
}

func TestNormalize_RejectsMalformedItems(t *testing.T) {
	cases := []struct {
		name  string
		item  model.StructureItem
		field string
	}{
		{"unit without payload", model.StructureItem{Type: model.ItemUnit}, "unit"},
		{"lesson without payload", model.StructureItem{Type: model.ItemLesson}, "lesson"},
		{"lesson without title", model.StructureItem{Type: model.ItemLesson, Lesson: &model.Lesson{ID: "x"}}, "title"},
		{"unknown type", model.StructureItem{Type: "chapter"}, "type"},
	}

	for _, tc := range cases {
		course := &model.Course{UnifiedStructure: []model.StructureItem{tc.item}}
		_, err := Normalize(course)
		var verr *StructureValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected StructureValidationError, got %v", tc.name, err)
		}
		if verr.Index != 0 || verr.Field != tc.field {
			t.Fatalf("%s: got index=%d field=%q, want index=0 field=%q", tc.name, verr.Index, verr.Field, tc.field)
		}
	}
}

func TestNormalize_RejectsDuplicateIDs(t *testing.T) {
	course := &model.Course{
		UnifiedStructure: []model.StructureItem{
			{ID: "a", Type: model.ItemLesson, Lesson: &model.Lesson{ID: "a", Title: "One"}},
			{ID: "a", Type: model.ItemLesson, Lesson: &model.Lesson{ID: "a", Title: "Two"}},
		},
	}
	_, err := Normalize(course)
	var verr *StructureValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected StructureValidationError, got %v", err)
	}
	if verr.Field != "id" {
		t.Fatalf("expected duplicate id error, got field %q", verr.Field)
	}
}

func TestNormalize_EmptyCourse(t *testing.T) {
	items, err := Normalize(&model.Course{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty structure, got %d items", len(items))
	}
}

func TestValidate_AcceptsNormalizedStructure(t *testing.T) {
	items, err := Normalize(legacyCourse())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if err := Validate(items); err != nil {
		t.Fatalf("Validate rejected a normalized structure: %v", err)
	}
}
