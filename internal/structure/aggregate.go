package structure

import (
	"lms_backend/internal/model"
)

// forEachLesson walks every lesson in the canonical structure: nested unit
// lessons first within each unit item, top-level lessons in sequence order.
func forEachLesson(items []model.StructureItem, fn func(*model.Lesson)) {
	for i := range items {
		switch items[i].Type {
		case model.ItemUnit:
			if items[i].Unit == nil {
				continue
			}
			for j := range items[i].Unit.Lessons {
				fn(&items[i].Unit.Lessons[j])
			}
		case model.ItemLesson:
			if items[i].Lesson != nil {
				fn(items[i].Lesson)
			}
		}
	}
}

// TotalLessons counts every lesson across all units plus the top-level ones.
func TotalLessons(items []model.StructureItem) int {
	n := 0
	forEachLesson(items, func(*model.Lesson) { n++ })
	return n
}

// TotalVideos counts lessons that carry video content (a lecture reference or
// at least one extra video).
func TotalVideos(items []model.StructureItem) int {
	n := 0
	forEachLesson(items, func(l *model.Lesson) {
		if l.Lecture != "" || len(l.Videos) > 0 {
			n++
		}
	})
	return n
}

// TotalPDFs counts lessons with at least one attached PDF.
func TotalPDFs(items []model.StructureItem) int {
	n := 0
	forEachLesson(items, func(l *model.Lesson) {
		if len(l.PDFs) > 0 {
			n++
		}
	})
	return n
}

// TotalPrice sums every lesson price plus every unit's own bundle price. A
// unit that has both a bundle price and priced lessons contributes both sums;
// that quirk is part of the published course totals and is kept as is.
func TotalPrice(items []model.StructureItem) float64 {
	var sum float64
	for i := range items {
		if items[i].Type == model.ItemUnit && items[i].Unit != nil {
			sum += items[i].Unit.Price
		}
	}
	forEachLesson(items, func(l *model.Lesson) { sum += l.Price })
	return sum
}
