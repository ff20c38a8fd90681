package structure

import (
	"errors"
	"testing"

	"lms_backend/internal/model"
)

func normalized(t *testing.T) []model.StructureItem {
	t.Helper()
	items, err := Normalize(legacyCourse())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	return items
}

func assertContiguousOrder(t *testing.T, items []model.StructureItem) {
	t.Helper()
	for i, it := range items {
		if it.Order != i {
			t.Fatalf("order gap: item %d has order %d", i, it.Order)
		}
	}
}

func TestAddItem_AppendsWithDefaults(t *testing.T) {
	items := normalized(t)

	out, err := AddItem(items, model.ItemUnit, NewItem{}, -1)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(out) != len(items)+1 {
		t.Fatalf("expected %d items, got %d", len(items)+1, len(out))
	}
	added := out[len(out)-1]
	if added.Type != model.ItemUnit || added.Unit.Title != DefaultUnitTitle {
		t.Fatalf("unexpected appended item %+v", added)
	}
	if added.ID == "" || added.Unit.ID != added.ID {
		t.Fatalf("appended item id not set consistently: %+v", added)
	}
	if len(added.Unit.Lessons) != 0 {
		t.Fatalf("new unit should start with no lessons")
	}
	assertContiguousOrder(t, out)
}

func TestAddItem_InsertAfterIndex(t *testing.T) {
	items := normalized(t)

	out, err := AddItem(items, model.ItemLesson, NewItem{Title: "Inserted"}, 0)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if out[1].Lesson == nil || out[1].Lesson.Title != "Inserted" {
		t.Fatalf("expected inserted lesson at index 1, got %+v", out[1])
	}
	// surrounding identities unchanged
	if out[0].ID != items[0].ID || out[2].ID != items[1].ID {
		t.Fatalf("insert changed identities of unrelated items")
	}
	assertContiguousOrder(t, out)
}

func TestAddItem_RejectsBadInput(t *testing.T) {
	items := normalized(t)
	if _, err := AddItem(items, "chapter", NewItem{}, -1); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	if _, err := AddItem(items, model.ItemUnit, NewItem{}, len(items)+1); err == nil {
		t.Fatalf("expected error for out-of-range insert position")
	}
}

func TestAddLessonToUnit(t *testing.T) {
	items := normalized(t)
	unitID := items[0].ID
	before := len(items[0].Unit.Lessons)

	out, err := AddLessonToUnit(items, unitID, NewItem{Title: "Factoring", Price: 15})
	if err != nil {
		t.Fatalf("AddLessonToUnit: %v", err)
	}
	lessons := out[0].Unit.Lessons
	if len(lessons) != before+1 {
		t.Fatalf("expected %d lessons, got %d", before+1, len(lessons))
	}
	added := lessons[len(lessons)-1]
	if added.Title != "Factoring" || added.Price != 15 || added.ID == "" {
		t.Fatalf("unexpected appended lesson %+v", added)
	}
	// the input structure must be left untouched
	if len(items[0].Unit.Lessons) != before {
		t.Fatalf("input structure was mutated")
	}
}

func TestAddLessonToUnit_MissingUnit(t *testing.T) {
	items := normalized(t)
	_, err := AddLessonToUnit(items, "no-such-unit", NewItem{})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Kind != "unit" {
		t.Fatalf("expected unit not-found, got kind %q", nf.Kind)
	}
}

func TestDeleteItem_CascadesUnitLessons(t *testing.T) {
	items := normalized(t)
	unitLessons := len(items[0].Unit.Lessons)
	totalBefore := TotalLessons(items)

	out, err := DeleteItem(items, items[0].ID)
	if err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if len(out) != len(items)-1 {
		t.Fatalf("expected %d items, got %d", len(items)-1, len(out))
	}
	if got := TotalLessons(out); got != totalBefore-unitLessons {
		t.Fatalf("cascade failed: %d lessons left, want %d", got, totalBefore-unitLessons)
	}
	assertContiguousOrder(t, out)
}

func TestDeleteItem_MissingID(t *testing.T) {
	items := normalized(t)
	_, err := DeleteItem(items, "ghost")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteLessonFromUnit(t *testing.T) {
	items := normalized(t)
	unitID := items[0].ID
	removedTitle := items[0].Unit.Lessons[1].Title

	out, err := DeleteLessonFromUnit(items, unitID, 1)
	if err != nil {
		t.Fatalf("DeleteLessonFromUnit: %v", err)
	}
	for _, l := range out[0].Unit.Lessons {
		if l.Title == removedTitle {
			t.Fatalf("lesson %q still present after deletion", removedTitle)
		}
	}
	if len(out[0].Unit.Lessons) != len(items[0].Unit.Lessons)-1 {
		t.Fatalf("lesson count unchanged after deletion")
	}

	if _, err := DeleteLessonFromUnit(items, unitID, 99); err == nil {
		t.Fatalf("expected error for out-of-range lesson index")
	}
	if _, err := DeleteLessonFromUnit(items, "ghost", 0); err == nil {
		t.Fatalf("expected error for missing unit")
	}
}

func TestReorder_MovesSingleItem(t *testing.T) {
	items := normalized(t)
	ids := collectTopLevelIDs(items)

	out, err := Reorder(items, 0, 2)
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	got := collectTopLevelIDs(out)
	want := []string{ids[1], ids[2], ids[0]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q want %q", i, got[i], want[i])
		}
	}
	assertContiguousOrder(t, out)

	// moving back restores the original order
	restored, err := Reorder(out, 2, 0)
	if err != nil {
		t.Fatalf("Reorder back: %v", err)
	}
	back := collectTopLevelIDs(restored)
	for i := range ids {
		if back[i] != ids[i] {
			t.Fatalf("round-trip reorder mismatch at %d", i)
		}
	}
}

func TestReorder_PreservesNestedContent(t *testing.T) {
	items := normalized(t)
	out, err := Reorder(items, 0, 1)
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if out[1].Unit == nil || len(out[1].Unit.Lessons) != len(items[0].Unit.Lessons) {
		t.Fatalf("nested lessons changed during reorder")
	}
}

func TestReorder_RejectsOutOfRange(t *testing.T) {
	items := normalized(t)
	if _, err := Reorder(items, -1, 0); err == nil {
		t.Fatalf("expected error for negative from index")
	}
	if _, err := Reorder(items, 0, len(items)); err == nil {
		t.Fatalf("expected error for to index past the end")
	}
}

func collectTopLevelIDs(items []model.StructureItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
