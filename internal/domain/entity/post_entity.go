package entity

import "time"

type Post struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Subtitle  string    `gorm:"size:255;not null" json:"subtitle"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  *string   `gorm:"size:1024" json:"imageUrl"`
	Published bool      `gorm:"not null;default:false" json:"published"`
	AuthorID  int64     `gorm:"not null;index" json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
