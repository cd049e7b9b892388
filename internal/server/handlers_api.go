package server

import (
	"log"
	"net/http"
	"time"

	"photo-decor/internal/decor"
)

type decorationItem struct {
	StickerID uint    `json:"stickerId" validate:"required"`
	PosX      float64 `json:"posX"`
	PosY      float64 `json:"posY"`
	Scale     float64 `json:"scale" validate:"gt=0"`
	Rotation  float64 `json:"rotation"`
	ZIndex    int     `json:"zIndex"`
}

type placeRequest struct {
	PostImageID uint             `json:"postImageId" validate:"required"`
	UserID      uint             `json:"userId" validate:"required"`
	Decorations []decorationItem `json:"decorations" validate:"required,min=1,max=50,dive"`
}

type updateRequest struct {
	PosX     float64 `json:"posX"`
	PosY     float64 `json:"posY"`
	Scale    float64 `json:"scale" validate:"gt=0"`
	Rotation float64 `json:"rotation"`
}

type stickerResponse struct {
	StickerID uint   `json:"stickerId"`
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl"`
}

type decorationResponse struct {
	DecorationID uint            `json:"decorationId"`
	PostID       uint            `json:"postId"`
	PostImageID  uint            `json:"postImageId"`
	UserID       uint            `json:"userId"`
	Sticker      stickerResponse `json:"sticker"`
	PosX         float64         `json:"posX"`
	PosY         float64         `json:"posY"`
	Scale        float64         `json:"scale"`
	Rotation     float64         `json:"rotation"`
	ZIndex       int             `json:"zIndex"`
	CreatedAt    time.Time       `json:"createdAt"`
}

var placeMessages = bindMessages{
	"PostImageID": {"required": "postImageId is required"},
	"UserID":      {"required": "userId is required"},
	"Decorations": {
		"required": "decorations must not be empty",
		"min":      "decorations must not be empty",
		"max":      "too many decorations in one request",
	},
	"StickerID": {"required": "stickerId is required"},
	"Scale":     {"gt": "scale must be greater than zero"},
}

var updateMessages = bindMessages{
	"Scale": {"gt": "scale must be greater than zero"},
}

func (s *Server) handlePlaceDecorations(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if !bindJSON(w, r, &req, placeMessages, "invalid placement request") {
		return
	}

	items := make([]decor.Input, 0, len(req.Decorations))
	for _, item := range req.Decorations {
		items = append(items, decor.Input{
			StickerID: item.StickerID,
			PosX:      item.PosX,
			PosY:      item.PosY,
			Scale:     item.Scale,
			Rotation:  item.Rotation,
			ZIndex:    item.ZIndex,
		})
	}

	placed, err := s.engine.Place(r.Context(), req.PostImageID, req.UserID, items)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	log.Printf("decorations placed image_id=%d user_id=%d count=%d", req.PostImageID, req.UserID, len(placed))
	writeJSON(w, http.StatusCreated, toResponseList(placed))
}

func (s *Server) handleListByImage(w http.ResponseWriter, r *http.Request) {
	imageID, ok := pathID(r, "imageID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	placed, err := s.engine.ListByImage(r.Context(), imageID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponseList(placed))
}

func (s *Server) handleListByPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "postID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	placed, err := s.engine.ListByPost(r.Context(), postID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponseList(placed))
}

func (s *Server) handleUpdateDecoration(w http.ResponseWriter, r *http.Request) {
	decorationID, ok := pathID(r, "decorationID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	requesterID, ok := queryUserID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "currentUserId is required")
		return
	}
	var req updateRequest
	if !bindJSON(w, r, &req, updateMessages, "invalid update request") {
		return
	}
	err := s.engine.Update(r.Context(), decorationID, requesterID, decor.Position{
		PosX:     req.PosX,
		PosY:     req.PosY,
		Scale:    req.Scale,
		Rotation: req.Rotation,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	log.Printf("decoration updated decoration_id=%d user_id=%d", decorationID, requesterID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteDecoration(w http.ResponseWriter, r *http.Request) {
	decorationID, ok := pathID(r, "decorationID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	requesterID, ok := queryUserID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "currentUserId is required")
		return
	}
	if err := s.engine.Delete(r.Context(), decorationID, requesterID); err != nil {
		writeEngineError(w, err)
		return
	}
	log.Printf("decoration deleted decoration_id=%d user_id=%d", decorationID, requesterID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListStickers(w http.ResponseWriter, r *http.Request) {
	stickers, err := s.stickers.AllStickers(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	list := make([]stickerResponse, 0, len(stickers))
	for _, sticker := range stickers {
		list = append(list, toStickerResponse(sticker))
	}
	writeJSON(w, http.StatusOK, list)
}

// handleCascadeImage serves the image deletion workflow: it clears every
// decoration on the image before the image record itself is removed.
func (s *Server) handleCascadeImage(w http.ResponseWriter, r *http.Request) {
	imageID, ok := pathID(r, "imageID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.engine.RemoveImageDecorations(r.Context(), imageID); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleCascadePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "postID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.engine.RemovePostDecorations(r.Context(), postID); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func toStickerResponse(sticker decor.Sticker) stickerResponse {
	return stickerResponse{
		StickerID: sticker.ID,
		Name:      sticker.Name,
		ImageURL:  sticker.ImageURL,
	}
}

func toResponseList(placed []decor.Placed) []decorationResponse {
	list := make([]decorationResponse, 0, len(placed))
	for _, p := range placed {
		list = append(list, decorationResponse{
			DecorationID: p.ID,
			PostID:       p.PostID,
			PostImageID:  p.ImageID,
			UserID:       p.UserID,
			Sticker:      toStickerResponse(p.Sticker),
			PosX:         p.PosX,
			PosY:         p.PosY,
			Scale:        p.Scale,
			Rotation:     p.Rotation,
			ZIndex:       p.ZIndex,
			CreatedAt:    p.CreatedAt,
		})
	}
	return list
}
