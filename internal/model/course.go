package model

import (
	"gorm.io/datatypes"
)

// StructureType selects which representation of the course content is
// authoritative. Legacy courses carry units + direct lessons as two separate
// arrays; unified courses carry one ordered sequence mixing both.
type StructureType string

const (
	StructureLegacy  StructureType = "legacy"
	StructureUnified StructureType = "unified"
)

type ItemType string

const (
	ItemUnit   ItemType = "unit"
	ItemLesson ItemType = "lesson"
)

// FileRef points at an uploaded object (thumbnail, lesson video, PDF).
type FileRef struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

// Lesson is the atomic content item. Price > 0 gates the lecture video and
// PDFs behind a purchase; PaidStudents holds the ids of users who bought it.
type Lesson struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price,omitempty"`
	Duration     float64   `json:"duration,omitempty"`
	Lecture      string    `json:"lecture,omitempty"`
	PDFs         []FileRef `json:"pdfs,omitempty"`
	Videos       []FileRef `json:"videos,omitempty"`
	Exams        []uint    `json:"exams,omitempty"`
	Trainings    []uint    `json:"trainings,omitempty"`
	PaidStudents []uint    `json:"paidStudents,omitempty"`
}

// Unit groups lessons and may carry its own bundle price, independent of the
// per-lesson prices inside it.
type Unit struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price,omitempty"`
	Lessons     []Lesson `json:"lessons"`
}

// StructureItem is one element of the unified sequence: a tagged variant that
// is either a unit (with nested lessons) or a top-level lesson. Exactly one of
// Unit/Lesson is set, matching Type; the item id equals the payload id.
type StructureItem struct {
	ID     string   `json:"id"`
	Type   ItemType `json:"type"`
	Order  int      `json:"order"`
	Unit   *Unit    `json:"unit,omitempty"`
	Lesson *Lesson  `json:"lesson,omitempty"`
}

// swagger:model Course
type Course struct {
	BaseModel
	Title        string  `gorm:"size:255;not null" json:"title"`
	Description  string  `gorm:"type:text" json:"description"`
	SubjectID    uint    `gorm:"index;type:bigint unsigned" json:"subjectId"`
	StageID      uint    `gorm:"index;type:bigint unsigned" json:"stageId"`
	InstructorID uint    `gorm:"index;type:bigint unsigned" json:"instructorId"`
	Thumbnail    FileRef `gorm:"embedded;embeddedPrefix:thumbnail_" json:"thumbnail"`

	StructureType StructureType `gorm:"type:enum('legacy','unified');default:'legacy'" json:"structureType"`

	// The three content representations are stored as JSON documents. Only the
	// one selected by StructureType is authoritative; the others may be stale
	// mirrors kept for old readers.
	Units            datatypes.JSONSlice[Unit]          `json:"units"`
	DirectLessons    datatypes.JSONSlice[Lesson]        `json:"directLessons"`
	UnifiedStructure datatypes.JSONSlice[StructureItem] `json:"unifiedStructure"`
}

func (Course) TableName() string {
	return "courses"
}
