package decor

import "time"

// Decoration is one placed sticker instance on a post image. UserID is the
// placer and never changes after creation; PostOwnerID is resolved from the
// owning post on load and is not stored on the row.
type Decoration struct {
	ID          uint
	PostID      uint
	ImageID     uint
	UserID      uint
	PostOwnerID uint
	StickerID   uint
	PosX        float64
	PosY        float64
	Scale       float64
	Rotation    float64
	ZIndex      int
	CreatedAt   time.Time
}

// Input is one requested placement within a batch.
type Input struct {
	StickerID uint
	PosX      float64
	PosY      float64
	Scale     float64
	Rotation  float64
	ZIndex    int
}

// Position carries the four mutable geometric fields. ZIndex, sticker and
// ownership are fixed at placement time.
type Position struct {
	PosX     float64
	PosY     float64
	Scale    float64
	Rotation float64
}

// Placed is a decoration joined with its sticker asset, the shape returned
// to callers.
type Placed struct {
	Decoration
	Sticker Sticker
}

type Image struct {
	ID      uint
	PostID  uint
	OwnerID uint
	URL     string
}

type User struct {
	ID       uint
	Nickname string
}

// Sticker is a reusable decorative asset from the sticker catalog.
type Sticker struct {
	ID       uint
	Name     string
	ImageURL string
}

// Notification is the event emitted when someone decorates another user's
// post image.
type Notification struct {
	ActorID     uint
	RecipientID uint
	PostID      uint
	ImageID     uint
	Message     string
}
