package db

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID        uint      `gorm:"primaryKey"`
	Nickname  string    `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Posts     []Post
}

type Post struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Title     string    `gorm:"size:200;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Images    []PostImage
}

type PostImage struct {
	ID        uint      `gorm:"primaryKey"`
	PostID    uint      `gorm:"index;not null"`
	ImageURL  string    `gorm:"size:512;not null"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Sticker struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:64;uniqueIndex;not null"`
	ImageURL  string    `gorm:"size:512;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Decoration carries the post id alongside the image id so that whole-post
// lookups and cascades need no join. The image's owning post is the source
// of truth; both columns are written together at placement time.
type Decoration struct {
	ID          uint      `gorm:"primaryKey"`
	PostID      uint      `gorm:"index;not null"`
	PostImageID uint      `gorm:"index;not null;index:idx_decorations_user_image"`
	UserID      uint      `gorm:"not null;index:idx_decorations_user_image"`
	StickerID   uint      `gorm:"index;not null"`
	PosX        float64   `gorm:"not null"`
	PosY        float64   `gorm:"not null"`
	Scale       float64   `gorm:"not null;default:1"`
	Rotation    float64   `gorm:"not null;default:0"`
	ZIndex      int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

type Notification struct {
	ID          uint           `gorm:"primaryKey"`
	ActorID     uint           `gorm:"index;not null"`
	RecipientID uint           `gorm:"index;not null"`
	Type        string         `gorm:"size:32;not null"`
	Payload     datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time      `gorm:"not null"`
}
