package structure

import (
	"fmt"

	"lms_backend/internal/model"
)

// NewItem carries the authoring defaults for a freshly created unit or lesson.
// An empty title falls back to the "New Unit"/"New Lesson" placeholder.
type NewItem struct {
	Title       string
	Description string
	Price       float64
}

// AddItem returns a new structure with one extra unit or lesson item inserted
// immediately after insertAfter, or appended when insertAfter is -1 or past
// the end. The new item gets a freshly generated id and empty nested
// collections; identities of existing items are untouched.
func AddItem(items []model.StructureItem, typ model.ItemType, init NewItem, insertAfter int) ([]model.StructureItem, error) {
	if typ != model.ItemUnit && typ != model.ItemLesson {
		return nil, fmt.Errorf("unknown structure item type %q", typ)
	}
	if insertAfter < -1 || insertAfter > len(items) {
		return nil, fmt.Errorf("insert position %d out of range [0,%d)", insertAfter, len(items))
	}

	id := model.NewItemID()
	item := model.StructureItem{ID: id, Type: typ}
	switch typ {
	case model.ItemUnit:
		title := init.Title
		if title == "" {
			title = DefaultUnitTitle
		}
		item.Unit = &model.Unit{
			ID:          id,
			Title:       title,
			Description: init.Description,
			Price:       init.Price,
			Lessons:     []model.Lesson{},
		}
	case model.ItemLesson:
		title := init.Title
		if title == "" {
			title = DefaultLessonTitle
		}
		item.Lesson = &model.Lesson{
			ID:          id,
			Title:       title,
			Description: init.Description,
			Price:       init.Price,
		}
	}

	out := cloneItems(items)
	if insertAfter == -1 || insertAfter >= len(out) {
		out = append(out, item)
	} else {
		out = append(out[:insertAfter+1], append([]model.StructureItem{item}, out[insertAfter+1:]...)...)
	}
	reindex(out)
	return out, nil
}

// AddLessonToUnit appends a new lesson (fresh id) to the unit with the given
// id. A missing unit is reported as NotFoundError rather than ignored.
func AddLessonToUnit(items []model.StructureItem, unitID string, init NewItem) ([]model.StructureItem, error) {
	out := cloneItems(items)
	for i := range out {
		if out[i].Type != model.ItemUnit || out[i].ID != unitID {
			continue
		}
		title := init.Title
		if title == "" {
			title = DefaultLessonTitle
		}
		out[i].Unit.Lessons = append(out[i].Unit.Lessons, model.Lesson{
			ID:          model.NewItemID(),
			Title:       title,
			Description: init.Description,
			Price:       init.Price,
		})
		return out, nil
	}
	return nil, &NotFoundError{Kind: "unit", ID: unitID}
}

// DeleteItem removes the top-level item with the given id. Deleting a unit
// cascades: its nested lessons go with it. Remaining items are reindexed to
// contiguous order values.
func DeleteItem(items []model.StructureItem, itemID string) ([]model.StructureItem, error) {
	out := cloneItems(items)
	for i := range out {
		if out[i].ID != itemID {
			continue
		}
		out = append(out[:i], out[i+1:]...)
		reindex(out)
		return out, nil
	}
	return nil, &NotFoundError{Kind: "item", ID: itemID}
}

// DeleteLessonFromUnit removes the lesson at lessonIndex from the unit with
// the given id.
func DeleteLessonFromUnit(items []model.StructureItem, unitID string, lessonIndex int) ([]model.StructureItem, error) {
	out := cloneItems(items)
	for i := range out {
		if out[i].Type != model.ItemUnit || out[i].ID != unitID {
			continue
		}
		lessons := out[i].Unit.Lessons
		if lessonIndex < 0 || lessonIndex >= len(lessons) {
			return nil, &NotFoundError{Kind: "lesson", ID: fmt.Sprintf("%s[%d]", unitID, lessonIndex)}
		}
		out[i].Unit.Lessons = append(lessons[:lessonIndex], lessons[lessonIndex+1:]...)
		return out, nil
	}
	return nil, &NotFoundError{Kind: "unit", ID: unitID}
}

// Reorder moves the item at fromIndex to toIndex, shifting the items in
// between by one position. Identities and nested content are unchanged; only
// array positions and Order values move.
func Reorder(items []model.StructureItem, fromIndex, toIndex int) ([]model.StructureItem, error) {
	if fromIndex < 0 || fromIndex >= len(items) {
		return nil, fmt.Errorf("from index %d out of range [0,%d)", fromIndex, len(items))
	}
	if toIndex < 0 || toIndex >= len(items) {
		return nil, fmt.Errorf("to index %d out of range [0,%d)", toIndex, len(items))
	}

	out := cloneItems(items)
	moved := out[fromIndex]
	out = append(out[:fromIndex], out[fromIndex+1:]...)
	out = append(out[:toIndex], append([]model.StructureItem{moved}, out[toIndex:]...)...)
	reindex(out)
	return out, nil
}
