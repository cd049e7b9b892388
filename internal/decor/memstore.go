package decor

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemStore is a mutex-guarded in-memory implementation of Store and the
// catalog interfaces. It backs the server when no database is configured and
// the unit tests.
type MemStore struct {
	mu            sync.Mutex
	nextID        uint
	nextRefID     uint
	decorations   map[uint]Decoration
	users         map[uint]User
	images        map[uint]Image
	stickers      map[uint]Sticker
	notifications []Notification
}

func NewMemStore() *MemStore {
	return &MemStore{
		nextID:      1,
		nextRefID:   1,
		decorations: make(map[uint]Decoration),
		users:       make(map[uint]User),
		images:      make(map[uint]Image),
		stickers:    make(map[uint]Sticker),
	}
}

func (m *MemStore) CreateBatch(ctx context.Context, decorations []Decoration) ([]Decoration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := make([]Decoration, 0, len(decorations))
	now := time.Now().UTC()
	for _, d := range decorations {
		d.ID = m.nextID
		d.CreatedAt = now
		m.nextID++
		m.decorations[d.ID] = d
		created = append(created, d)
	}
	return created, nil
}

func (m *MemStore) Get(ctx context.Context, id uint) (Decoration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.decorations[id]
	if !ok {
		return Decoration{}, fmt.Errorf("%w: decoration %d", ErrNotFound, id)
	}
	return d, nil
}

func (m *MemStore) ListByImage(ctx context.Context, imageID uint) ([]Decoration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collect(func(d Decoration) bool { return d.ImageID == imageID }), nil
}

func (m *MemStore) ListByPost(ctx context.Context, postID uint) ([]Decoration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collect(func(d Decoration) bool { return d.PostID == postID }), nil
}

func (m *MemStore) CountByUserAndImage(ctx context.Context, userID, imageID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, d := range m.decorations {
		if d.UserID == userID && d.ImageID == imageID {
			count++
		}
	}
	return count, nil
}

func (m *MemStore) UpdatePosition(ctx context.Context, id uint, pos Position) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.decorations[id]
	if !ok {
		return fmt.Errorf("%w: decoration %d", ErrNotFound, id)
	}
	d.PosX = pos.PosX
	d.PosY = pos.PosY
	d.Scale = pos.Scale
	d.Rotation = pos.Rotation
	m.decorations[id] = d
	return nil
}

func (m *MemStore) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.decorations[id]; !ok {
		return fmt.Errorf("%w: decoration %d", ErrNotFound, id)
	}
	delete(m.decorations, id)
	return nil
}

func (m *MemStore) DeleteByImage(ctx context.Context, imageID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, d := range m.decorations {
		if d.ImageID == imageID {
			delete(m.decorations, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemStore) DeleteByPost(ctx context.Context, postID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, d := range m.decorations {
		if d.PostID == postID {
			delete(m.decorations, id)
			removed++
		}
	}
	return removed, nil
}

// collect returns matching decorations in insertion order. Callers hold mu.
func (m *MemStore) collect(match func(Decoration) bool) []Decoration {
	var list []Decoration
	for _, d := range m.decorations {
		if match(d) {
			list = append(list, d)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (m *MemStore) Image(ctx context.Context, id uint) (Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	image, ok := m.images[id]
	if !ok {
		return Image{}, fmt.Errorf("%w: image %d", ErrNotFound, id)
	}
	return image, nil
}

func (m *MemStore) User(ctx context.Context, id uint) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return User{}, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return user, nil
}

func (m *MemStore) Stickers(ctx context.Context, ids []uint) ([]Sticker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := make([]Sticker, 0, len(ids))
	for _, id := range ids {
		if sticker, ok := m.stickers[id]; ok {
			found = append(found, sticker)
		}
	}
	return found, nil
}

func (m *MemStore) AllStickers(ctx context.Context) ([]Sticker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]Sticker, 0, len(m.stickers))
	for _, sticker := range m.stickers {
		list = append(list, sticker)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *MemStore) Notify(ctx context.Context, n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, n)
	return nil
}

// Notifications returns everything delivered to the sink so far.
func (m *MemStore) Notifications() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.notifications...)
}

// AddUser registers a reference user and returns it with an assigned id.
func (m *MemStore) AddUser(nickname string) User {
	m.mu.Lock()
	defer m.mu.Unlock()
	user := User{ID: m.nextRefID, Nickname: nickname}
	m.nextRefID++
	m.users[user.ID] = user
	return user
}

// AddImage registers a post image along with its owning post and owner.
func (m *MemStore) AddImage(postID, ownerID uint, url string) Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	image := Image{ID: m.nextRefID, PostID: postID, OwnerID: ownerID, URL: url}
	m.nextRefID++
	m.images[image.ID] = image
	return image
}

// AddSticker registers a reusable sticker asset.
func (m *MemStore) AddSticker(name, imageURL string) Sticker {
	m.mu.Lock()
	defer m.mu.Unlock()
	sticker := Sticker{ID: m.nextRefID, Name: name, ImageURL: imageURL}
	m.nextRefID++
	m.stickers[sticker.ID] = sticker
	return sticker
}
