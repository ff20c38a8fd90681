package model

// Post is a blog article written by an instructor or admin.
type Post struct {
	BaseModel
	AuthorID  uint    `gorm:"index;type:bigint unsigned;not null" json:"authorId"`
	Title     string  `gorm:"size:255;not null" json:"title"`
	Content   string  `gorm:"type:text" json:"content"`
	Image     FileRef `gorm:"embedded;embeddedPrefix:image_" json:"image"`
	ViewCount int     `gorm:"column:view_count;default:0" json:"viewCount"`
}

func (Post) TableName() string {
	return "posts"
}

// Question is a student question in the Q&A section.
type Question struct {
	BaseModel
	AuthorID uint     `gorm:"index;type:bigint unsigned;not null" json:"authorId"`
	Title    string   `gorm:"size:255;not null" json:"title"`
	Content  string   `gorm:"type:text" json:"content"`
	Answers  []Answer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

type Answer struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	AuthorID   uint   `gorm:"index;type:bigint unsigned;not null" json:"authorId"`
	Content    string `gorm:"type:text;not null" json:"content"`
}

func (Answer) TableName() string {
	return "answers"
}
