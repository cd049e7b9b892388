package db

import (
	"context"
	"errors"
	"fmt"

	"photo-decor/internal/decor"

	"gorm.io/gorm"
)

// Catalog serves the read-only reference data: users, post images and
// sticker assets. Their lifecycle is managed elsewhere.
type Catalog struct {
	conn *gorm.DB
}

func NewCatalog(conn *gorm.DB) *Catalog {
	return &Catalog{conn: conn}
}

func (c *Catalog) Image(ctx context.Context, id uint) (decor.Image, error) {
	var image PostImage
	err := c.conn.WithContext(ctx).Take(&image, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decor.Image{}, fmt.Errorf("%w: image %d", decor.ErrNotFound, id)
	}
	if err != nil {
		return decor.Image{}, err
	}
	var post Post
	err = c.conn.WithContext(ctx).Take(&post, image.PostID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decor.Image{}, fmt.Errorf("%w: post %d for image %d", decor.ErrNotFound, image.PostID, id)
	}
	if err != nil {
		return decor.Image{}, err
	}
	return decor.Image{
		ID:      image.ID,
		PostID:  image.PostID,
		OwnerID: post.UserID,
		URL:     image.ImageURL,
	}, nil
}

func (c *Catalog) User(ctx context.Context, id uint) (decor.User, error) {
	var user User
	err := c.conn.WithContext(ctx).Take(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decor.User{}, fmt.Errorf("%w: user %d", decor.ErrNotFound, id)
	}
	if err != nil {
		return decor.User{}, err
	}
	return decor.User{ID: user.ID, Nickname: user.Nickname}, nil
}

func (c *Catalog) Stickers(ctx context.Context, ids []uint) ([]decor.Sticker, error) {
	var rows []Sticker
	err := c.conn.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toStickerList(rows), nil
}

func (c *Catalog) AllStickers(ctx context.Context) ([]decor.Sticker, error) {
	var rows []Sticker
	err := c.conn.WithContext(ctx).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toStickerList(rows), nil
}

func toStickerList(rows []Sticker) []decor.Sticker {
	list := make([]decor.Sticker, 0, len(rows))
	for _, row := range rows {
		list = append(list, decor.Sticker{
			ID:       row.ID,
			Name:     row.Name,
			ImageURL: row.ImageURL,
		})
	}
	return list
}
