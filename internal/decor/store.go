package decor

import "context"

// Store is the persistence contract for decorations. CreateBatch is
// all-or-nothing: either every decoration in the batch is stored or none is.
// List results come back in insertion order, which is also the z-index
// tie-break.
type Store interface {
	CreateBatch(ctx context.Context, decorations []Decoration) ([]Decoration, error)
	Get(ctx context.Context, id uint) (Decoration, error)
	ListByImage(ctx context.Context, imageID uint) ([]Decoration, error)
	ListByPost(ctx context.Context, postID uint) ([]Decoration, error)
	CountByUserAndImage(ctx context.Context, userID, imageID uint) (int64, error)
	UpdatePosition(ctx context.Context, id uint, pos Position) error
	Delete(ctx context.Context, id uint) error
	DeleteByImage(ctx context.Context, imageID uint) (int64, error)
	DeleteByPost(ctx context.Context, postID uint) (int64, error)
}

// ImageCatalog resolves post images. The image's owning post is the source
// of truth for the post id and post owner carried on each decoration.
type ImageCatalog interface {
	Image(ctx context.Context, id uint) (Image, error)
}

type UserCatalog interface {
	User(ctx context.Context, id uint) (User, error)
}

// StickerCatalog resolves sticker assets. Stickers returns only the assets
// that exist; callers detect missing ids by comparing against the request.
type StickerCatalog interface {
	Stickers(ctx context.Context, ids []uint) ([]Sticker, error)
}

// NotificationSink receives best-effort notifications. Delivery failures
// never fail the operation that emitted them.
type NotificationSink interface {
	Notify(ctx context.Context, n Notification) error
}
