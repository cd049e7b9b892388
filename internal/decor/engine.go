package decor

import (
	"context"
	"fmt"
	"log"
)

// DefaultQuota is the cap on decorations one user may hold on one image.
const DefaultQuota = 50

// Engine orchestrates decoration placement, mutation and removal. It owns no
// state of its own; the store is the only shared resource, so every call is
// safe for concurrent use.
type Engine struct {
	store    Store
	images   ImageCatalog
	users    UserCatalog
	stickers StickerCatalog
	sink     NotificationSink
	quota    int
}

func NewEngine(store Store, images ImageCatalog, users UserCatalog, stickers StickerCatalog, sink NotificationSink, quota int) *Engine {
	if quota <= 0 {
		quota = DefaultQuota
	}
	return &Engine{
		store:    store,
		images:   images,
		users:    users,
		stickers: stickers,
		sink:     sink,
		quota:    quota,
	}
}

// Place stores a batch of decorations on one image for one placer. The whole
// batch lands or none of it does. The quota count and the insert are not
// serialized against concurrent batches from the same user; the cap is an
// anti-spam ceiling, and concurrent requests may overshoot it by at most
// their combined batch size.
func (e *Engine) Place(ctx context.Context, imageID, placerID uint, items []Input) ([]Placed, error) {
	if len(items) == 0 {
		return nil, nil
	}

	existing, err := e.store.CountByUserAndImage(ctx, placerID, imageID)
	if err != nil {
		return nil, err
	}
	if existing+int64(len(items)) > int64(e.quota) {
		return nil, fmt.Errorf("%w: image %d already carries %d of %d decorations for user %d",
			ErrQuotaExceeded, imageID, existing, e.quota, placerID)
	}

	image, err := e.images.Image(ctx, imageID)
	if err != nil {
		return nil, err
	}
	placer, err := e.users.User(ctx, placerID)
	if err != nil {
		return nil, err
	}

	stickerMap, err := e.resolveStickers(ctx, stickerIDs(items))
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if _, ok := stickerMap[item.StickerID]; !ok {
			return nil, fmt.Errorf("%w: sticker %d does not exist", ErrInvalidReference, item.StickerID)
		}
	}

	batch := make([]Decoration, 0, len(items))
	for _, item := range items {
		batch = append(batch, Decoration{
			PostID:      image.PostID,
			ImageID:     image.ID,
			UserID:      placer.ID,
			PostOwnerID: image.OwnerID,
			StickerID:   item.StickerID,
			PosX:        item.PosX,
			PosY:        item.PosY,
			Scale:       item.Scale,
			Rotation:    item.Rotation,
			ZIndex:      item.ZIndex,
		})
	}
	created, err := e.store.CreateBatch(ctx, batch)
	if err != nil {
		return nil, err
	}

	if placer.ID != image.OwnerID {
		notification := Notification{
			ActorID:     placer.ID,
			RecipientID: image.OwnerID,
			PostID:      image.PostID,
			ImageID:     image.ID,
			Message:     fmt.Sprintf("%s decorated your photo", placer.Nickname),
		}
		if err := e.sink.Notify(ctx, notification); err != nil {
			log.Printf("notification delivery failed actor=%d recipient=%d: %v", placer.ID, image.OwnerID, err)
		}
	}

	return project(created, stickerMap), nil
}

// ListByImage returns every decoration on one image, each joined with its
// sticker asset. Stickers are resolved once per distinct id, not per row.
func (e *Engine) ListByImage(ctx context.Context, imageID uint) ([]Placed, error) {
	decorations, err := e.store.ListByImage(ctx, imageID)
	if err != nil {
		return nil, err
	}
	return e.withStickers(ctx, decorations)
}

// ListByPost returns decorations across every image of the post, used to
// hydrate a whole post on load.
func (e *Engine) ListByPost(ctx context.Context, postID uint) ([]Placed, error) {
	decorations, err := e.store.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return e.withStickers(ctx, decorations)
}

// Update repositions a decoration. Only the placer may do this, and only the
// four geometric fields change.
func (e *Engine) Update(ctx context.Context, decorationID, requesterID uint, pos Position) error {
	decoration, err := e.store.Get(ctx, decorationID)
	if err != nil {
		return err
	}
	if err := Authorize(decoration, requesterID, ActionUpdate); err != nil {
		return err
	}
	return e.store.UpdatePosition(ctx, decorationID, pos)
}

// Delete removes one decoration. The placer and the post owner may both do
// this; deletion is final.
func (e *Engine) Delete(ctx context.Context, decorationID, requesterID uint) error {
	decoration, err := e.store.Get(ctx, decorationID)
	if err != nil {
		return err
	}
	if err := Authorize(decoration, requesterID, ActionDelete); err != nil {
		return err
	}
	return e.store.Delete(ctx, decorationID)
}

// RemoveImageDecorations bulk-deletes every decoration on an image. Called by
// the image deletion workflow before the image itself goes away.
func (e *Engine) RemoveImageDecorations(ctx context.Context, imageID uint) error {
	removed, err := e.store.DeleteByImage(ctx, imageID)
	if err != nil {
		return err
	}
	log.Printf("decorations cascade-removed image_id=%d count=%d", imageID, removed)
	return nil
}

// RemovePostDecorations bulk-deletes every decoration across a post.
func (e *Engine) RemovePostDecorations(ctx context.Context, postID uint) error {
	removed, err := e.store.DeleteByPost(ctx, postID)
	if err != nil {
		return err
	}
	log.Printf("decorations cascade-removed post_id=%d count=%d", postID, removed)
	return nil
}

func (e *Engine) withStickers(ctx context.Context, decorations []Decoration) ([]Placed, error) {
	ids := make([]uint, 0, len(decorations))
	seen := make(map[uint]struct{}, len(decorations))
	for _, d := range decorations {
		if _, ok := seen[d.StickerID]; ok {
			continue
		}
		seen[d.StickerID] = struct{}{}
		ids = append(ids, d.StickerID)
	}
	stickerMap, err := e.resolveStickers(ctx, ids)
	if err != nil {
		return nil, err
	}
	return project(decorations, stickerMap), nil
}

func (e *Engine) resolveStickers(ctx context.Context, ids []uint) (map[uint]Sticker, error) {
	if len(ids) == 0 {
		return map[uint]Sticker{}, nil
	}
	stickers, err := e.stickers.Stickers(ctx, ids)
	if err != nil {
		return nil, err
	}
	resolved := make(map[uint]Sticker, len(stickers))
	for _, sticker := range stickers {
		resolved[sticker.ID] = sticker
	}
	return resolved, nil
}

func stickerIDs(items []Input) []uint {
	ids := make([]uint, 0, len(items))
	seen := make(map[uint]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.StickerID]; ok {
			continue
		}
		seen[item.StickerID] = struct{}{}
		ids = append(ids, item.StickerID)
	}
	return ids
}

func project(decorations []Decoration, stickers map[uint]Sticker) []Placed {
	placed := make([]Placed, 0, len(decorations))
	for _, d := range decorations {
		placed = append(placed, Placed{
			Decoration: d,
			Sticker:    stickers[d.StickerID],
		})
	}
	return placed
}
