package model

// Subject is the curriculum subject a course belongs to.
type Subject struct {
	BaseModel
	Name string `gorm:"size:100;unique;not null" json:"name"`
}

func (Subject) TableName() string {
	return "subjects"
}

// Stage is the school stage / grade a course targets.
type Stage struct {
	BaseModel
	Name string `gorm:"size:100;unique;not null" json:"name"`
}

func (Stage) TableName() string {
	return "stages"
}
