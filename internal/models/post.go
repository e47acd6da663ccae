package models

import (
	"time"

	"github.com/google/uuid"
)

// Post text is validated in the authoring workflow, not here: the
// empty-string check belongs to the write paths so reads stay cheap.
// PubDate is set once at creation and never updated afterwards.
type Post struct {
	BaseModel
	Text     string     `json:"text" gorm:"type:text;not null"`
	PubDate  time.Time  `json:"pubDate" gorm:"not null;index:idx_posts_pub_date,sort:desc"`
	AuthorID uuid.UUID  `json:"authorID" gorm:"type:uuid;not null;index"`
	GroupID  *uuid.UUID `json:"groupID,omitempty" gorm:"type:uuid;index"`

	Author User   `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Group  *Group `json:"group,omitempty" gorm:"foreignKey:GroupID"`
}
