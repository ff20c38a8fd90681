// Package structure reconciles the three persisted representations of a
// course's content (legacy units + direct lessons, and the newer unified
// sequence) into one canonical ordered form, and provides the editing
// operations the authoring endpoints are built on. Every function is pure:
// inputs are never mutated and persistence is the caller's concern.
package structure

import (
	"lms_backend/internal/model"
)

const (
	DefaultUnitTitle   = "New Unit"
	DefaultLessonTitle = "New Lesson"
)

// Normalize produces the canonical unified sequence for a course, whichever
// combination of legacy and unified fields is populated.
//
// A non-empty UnifiedStructure is authoritative and passes through unchanged
// except that missing ids are generated. Otherwise the sequence is synthesized
// from the legacy fields: one unit item per Units entry in array order, then
// one lesson item per DirectLessons entry. Every returned item has a non-empty
// unique id and Order equal to its index.
func Normalize(course *model.Course) ([]model.StructureItem, error) {
	var items []model.StructureItem

	if len(course.UnifiedStructure) > 0 {
		items = cloneItems(course.UnifiedStructure)
		for i := range items {
			if err := validateItem(&items[i], i); err != nil {
				return nil, err
			}
			fillItemIDs(&items[i])
		}
	} else {
		items = make([]model.StructureItem, 0, len(course.Units)+len(course.DirectLessons))
		for _, u := range course.Units {
			unit := cloneUnit(u)
			if unit.ID == "" {
				unit.ID = model.NewItemID()
			}
			for j := range unit.Lessons {
				if unit.Lessons[j].ID == "" {
					unit.Lessons[j].ID = model.NewItemID()
				}
			}
			items = append(items, model.StructureItem{
				ID:   unit.ID,
				Type: model.ItemUnit,
				Unit: &unit,
			})
		}
		for _, l := range course.DirectLessons {
			lesson := cloneLesson(l)
			if lesson.ID == "" {
				lesson.ID = model.NewItemID()
			}
			items = append(items, model.StructureItem{
				ID:     lesson.ID,
				Type:   model.ItemLesson,
				Lesson: &lesson,
			})
		}
	}

	reindex(items)

	if idx, field, ok := findDuplicateID(items); !ok {
		return nil, &StructureValidationError{Index: idx, Field: field}
	}
	return items, nil
}

// Denormalize splits a unified sequence back into the legacy shape for
// consumers that still expect separate unit and direct-lesson arrays. It is
// the exact inverse of the synthesis performed by Normalize.
func Denormalize(items []model.StructureItem) ([]model.Unit, []model.Lesson) {
	units := make([]model.Unit, 0, len(items))
	direct := make([]model.Lesson, 0, len(items))
	for _, it := range items {
		switch it.Type {
		case model.ItemUnit:
			if it.Unit != nil {
				units = append(units, cloneUnit(*it.Unit))
			}
		case model.ItemLesson:
			if it.Lesson != nil {
				direct = append(direct, cloneLesson(*it.Lesson))
			}
		}
	}
	return units, direct
}

// Validate checks a unified sequence before it is saved: every item must be
// well-formed and no two items (nested lessons included) may share an id.
func Validate(items []model.StructureItem) error {
	for i := range items {
		if err := validateItem(&items[i], i); err != nil {
			return err
		}
	}
	if idx, field, ok := findDuplicateID(items); !ok {
		return &StructureValidationError{Index: idx, Field: field}
	}
	return nil
}

func validateItem(it *model.StructureItem, index int) error {
	switch it.Type {
	case model.ItemUnit:
		if it.Unit == nil {
			return &StructureValidationError{Index: index, Field: "unit"}
		}
	case model.ItemLesson:
		if it.Lesson == nil {
			return &StructureValidationError{Index: index, Field: "lesson"}
		}
		if it.Lesson.Title == "" {
			return &StructureValidationError{Index: index, Field: "title"}
		}
	default:
		return &StructureValidationError{Index: index, Field: "type"}
	}
	return nil
}

// fillItemIDs generates ids for an item and its payload where absent, keeping
// the item id and the payload id in sync.
func fillItemIDs(it *model.StructureItem) {
	switch it.Type {
	case model.ItemUnit:
		if it.ID == "" {
			it.ID = it.Unit.ID
		}
		if it.ID == "" {
			it.ID = model.NewItemID()
		}
		it.Unit.ID = it.ID
		for j := range it.Unit.Lessons {
			if it.Unit.Lessons[j].ID == "" {
				it.Unit.Lessons[j].ID = model.NewItemID()
			}
		}
	case model.ItemLesson:
		if it.ID == "" {
			it.ID = it.Lesson.ID
		}
		if it.ID == "" {
			it.ID = model.NewItemID()
		}
		it.Lesson.ID = it.ID
	}
}

// findDuplicateID returns ok=false with the offending index when two items in
// the structure, nested lessons included, share an id.
func findDuplicateID(items []model.StructureItem) (int, string, bool) {
	seen := make(map[string]struct{}, len(items))
	mark := func(id string) bool {
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
		return true
	}
	for i, it := range items {
		if !mark(it.ID) {
			return i, "id", false
		}
		if it.Type == model.ItemUnit && it.Unit != nil {
			for _, l := range it.Unit.Lessons {
				if !mark(l.ID) {
					return i, "lessons.id", false
				}
			}
		}
	}
	return 0, "", true
}

// reindex re-derives contiguous Order values and keeps payload ids aligned
// with item ids.
func reindex(items []model.StructureItem) {
	for i := range items {
		items[i].Order = i
		switch items[i].Type {
		case model.ItemUnit:
			if items[i].Unit != nil {
				items[i].Unit.ID = items[i].ID
			}
		case model.ItemLesson:
			if items[i].Lesson != nil {
				items[i].Lesson.ID = items[i].ID
			}
		}
	}
}

func cloneLesson(l model.Lesson) model.Lesson {
	out := l
	out.PDFs = append([]model.FileRef(nil), l.PDFs...)
	out.Videos = append([]model.FileRef(nil), l.Videos...)
	out.Exams = append([]uint(nil), l.Exams...)
	out.Trainings = append([]uint(nil), l.Trainings...)
	out.PaidStudents = append([]uint(nil), l.PaidStudents...)
	return out
}

func cloneUnit(u model.Unit) model.Unit {
	out := u
	out.Lessons = make([]model.Lesson, len(u.Lessons))
	for i, l := range u.Lessons {
		out.Lessons[i] = cloneLesson(l)
	}
	return out
}

func cloneItems(items []model.StructureItem) []model.StructureItem {
	out := make([]model.StructureItem, len(items))
	for i, it := range items {
		out[i] = it
		if it.Unit != nil {
			u := cloneUnit(*it.Unit)
			out[i].Unit = &u
		}
		if it.Lesson != nil {
			l := cloneLesson(*it.Lesson)
			out[i].Lesson = &l
		}
	}
	return out
}
