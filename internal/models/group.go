package models

type Group struct {
	BaseModel
	Title       string `json:"title" gorm:"type:varchar(200);not null"`
	Slug        string `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
	Posts       []Post `json:"-" gorm:"foreignKey:GroupID"`
}
