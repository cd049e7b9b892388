package db

import (
	"context"
	"encoding/json"
	"time"

	"photo-decor/internal/decor"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const notificationTypeDecoration = "decoration"

// Sink persists notifications as rows. The engine treats delivery as
// best-effort, so errors here are reported but never block a placement.
type Sink struct {
	conn *gorm.DB
}

func NewSink(conn *gorm.DB) *Sink {
	return &Sink{conn: conn}
}

type notificationPayload struct {
	PostID  uint   `json:"post_id"`
	ImageID uint   `json:"image_id"`
	Message string `json:"message"`
}

func (s *Sink) Notify(ctx context.Context, n decor.Notification) error {
	payload, err := json.Marshal(notificationPayload{
		PostID:  n.PostID,
		ImageID: n.ImageID,
		Message: n.Message,
	})
	if err != nil {
		return err
	}
	record := Notification{
		ActorID:     n.ActorID,
		RecipientID: n.RecipientID,
		Type:        notificationTypeDecoration,
		Payload:     datatypes.JSON(payload),
		CreatedAt:   time.Now().UTC(),
	}
	return s.conn.WithContext(ctx).Create(&record).Error
}
