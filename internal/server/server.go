package server

import (
	"context"
	"net/http"

	"photo-decor/internal/config"
	"photo-decor/internal/decor"
)

// stickerDirectory lists the full sticker catalog for the picker UI. The
// engine only ever resolves stickers by id, so this stays a server concern.
type stickerDirectory interface {
	AllStickers(ctx context.Context) ([]decor.Sticker, error)
}

type Server struct {
	engine   *decor.Engine
	stickers stickerDirectory
	cfg      config.Config
}

func New(engine *decor.Engine, stickers stickerDirectory, cfg config.Config) *Server {
	return &Server{
		engine:   engine,
		stickers: stickers,
		cfg:      cfg,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/decorations", s.handlePlaceDecorations)
	mux.HandleFunc("GET /api/decorations/image/{imageID}", s.handleListByImage)
	mux.HandleFunc("GET /api/decorations/post/{postID}", s.handleListByPost)
	mux.HandleFunc("PUT /api/decorations/{decorationID}", s.handleUpdateDecoration)
	mux.HandleFunc("DELETE /api/decorations/{decorationID}", s.handleDeleteDecoration)
	mux.HandleFunc("GET /api/stickers", s.handleListStickers)
	mux.HandleFunc("DELETE /api/internal/images/{imageID}/decorations", s.handleCascadeImage)
	mux.HandleFunc("DELETE /api/internal/posts/{postID}/decorations", s.handleCascadePost)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
