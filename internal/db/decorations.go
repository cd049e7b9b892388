package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"photo-decor/internal/decor"

	"gorm.io/gorm"
)

// Store is the Postgres-backed decoration store. Row-level serialization of
// conflicting writes is delegated to the database; batch inserts run in one
// transaction so a batch is never partially visible.
type Store struct {
	conn *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{conn: conn}
}

const decorationColumns = "decorations.id, decorations.post_id, decorations.post_image_id, " +
	"decorations.user_id, decorations.sticker_id, decorations.pos_x, decorations.pos_y, " +
	"decorations.scale, decorations.rotation, decorations.z_index, decorations.created_at, " +
	"posts.user_id AS post_owner_id"

// decorationRow is a decoration joined with the owning post's user id.
type decorationRow struct {
	ID          uint
	PostID      uint
	PostImageID uint
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

func (r decorationRow) toDomain() decor.Decoration {
	return decor.Decoration{
		ID:          r.ID,
		PostID:      r.PostID,
		ImageID:     r.PostImageID,
		UserID:      r.UserID,
		PostOwnerID: r.PostOwnerID,
		StickerID:   r.StickerID,
		PosX:        r.PosX,
		PosY:        r.PosY,
		Scale:       r.Scale,
		Rotation:    r.Rotation,
		ZIndex:      r.ZIndex,
		CreatedAt:   r.CreatedAt,
	}
}

func (s *Store) CreateBatch(ctx context.Context, decorations []decor.Decoration) ([]decor.Decoration, error) {
	rows := make([]Decoration, 0, len(decorations))
	for _, d := range decorations {
		rows = append(rows, Decoration{
			PostID:      d.PostID,
			PostImageID: d.ImageID,
			UserID:      d.UserID,
			StickerID:   d.StickerID,
			PosX:        d.PosX,
			PosY:        d.PosY,
			Scale:       d.Scale,
			Rotation:    d.Rotation,
			ZIndex:      d.ZIndex,
		})
	}
	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	created := make([]decor.Decoration, 0, len(rows))
	for i, row := range rows {
		d := decorations[i]
		d.ID = row.ID
		d.CreatedAt = row.CreatedAt
		created = append(created, d)
	}
	return created, nil
}

func (s *Store) Get(ctx context.Context, id uint) (decor.Decoration, error) {
	var row decorationRow
	err := s.joined(ctx).
		Where("decorations.id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decor.Decoration{}, fmt.Errorf("%w: decoration %d", decor.ErrNotFound, id)
	}
	if err != nil {
		return decor.Decoration{}, err
	}
	return row.toDomain(), nil
}

func (s *Store) ListByImage(ctx context.Context, imageID uint) ([]decor.Decoration, error) {
	var rows []decorationRow
	err := s.joined(ctx).
		Where("decorations.post_image_id = ?", imageID).
		Order("decorations.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

func (s *Store) ListByPost(ctx context.Context, postID uint) ([]decor.Decoration, error) {
	var rows []decorationRow
	err := s.joined(ctx).
		Where("decorations.post_id = ?", postID).
		Order("decorations.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

func (s *Store) CountByUserAndImage(ctx context.Context, userID, imageID uint) (int64, error) {
	var count int64
	err := s.conn.WithContext(ctx).
		Model(&Decoration{}).
		Where("user_id = ? AND post_image_id = ?", userID, imageID).
		Count(&count).Error
	return count, err
}

func (s *Store) UpdatePosition(ctx context.Context, id uint, pos decor.Position) error {
	result := s.conn.WithContext(ctx).
		Model(&Decoration{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"pos_x":    pos.PosX,
			"pos_y":    pos.PosY,
			"scale":    pos.Scale,
			"rotation": pos.Rotation,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: decoration %d", decor.ErrNotFound, id)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	result := s.conn.WithContext(ctx).Delete(&Decoration{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: decoration %d", decor.ErrNotFound, id)
	}
	return nil
}

func (s *Store) DeleteByImage(ctx context.Context, imageID uint) (int64, error) {
	result := s.conn.WithContext(ctx).
		Where("post_image_id = ?", imageID).
		Delete(&Decoration{})
	return result.RowsAffected, result.Error
}

func (s *Store) DeleteByPost(ctx context.Context, postID uint) (int64, error) {
	result := s.conn.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&Decoration{})
	return result.RowsAffected, result.Error
}

func (s *Store) joined(ctx context.Context) *gorm.DB {
	return s.conn.WithContext(ctx).
		Model(&Decoration{}).
		Select(decorationColumns).
		Joins("JOIN posts ON posts.id = decorations.post_id")
}

func toDomainList(rows []decorationRow) []decor.Decoration {
	list := make([]decor.Decoration, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toDomain())
	}
	return list
}
