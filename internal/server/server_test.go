package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"photo-decor/internal/config"
	"photo-decor/internal/decor"
)

type testEnv struct {
	ts     *httptest.Server
	store  *decor.MemStore
	placer decor.User
	owner  decor.User
	image  decor.Image
	heart  decor.Sticker
	star   decor.Sticker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := decor.NewMemStore()
	placer := store.AddUser("mina")
	owner := store.AddUser("june")
	image := store.AddImage(7, owner.ID, "https://example.com/photo.jpg")
	heart := store.AddSticker("heart", "https://example.com/heart.png")
	star := store.AddSticker("star", "https://example.com/star.png")

	engine := decor.NewEngine(store, store, store, store, store, 50)
	srv := New(engine, store, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, store: store, placer: placer, owner: owner, image: image, heart: heart, star: star}
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	var list []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return list
}

func (env *testEnv) placePayload(items ...map[string]any) map[string]any {
	return map[string]any{
		"postImageId": env.image.ID,
		"userId":      env.placer.ID,
		"decorations": items,
	}
}

func item(stickerID uint, z int) map[string]any {
	return map[string]any{
		"stickerId": stickerID,
		"posX":      12.5,
		"posY":      40.0,
		"scale":     1.0,
		"rotation":  0.0,
		"zIndex":    z,
	}
}

func TestPlaceDecorations(t *testing.T) {
	env := newTestEnv(t)

	resp := doRequest(t, env.ts, http.MethodPost, "/api/decorations",
		env.placePayload(item(env.heart.ID, 1), item(env.star.ID, 2)))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	created := decodeList(t, resp)
	if len(created) != 2 {
		t.Fatalf("expected 2 decorations, got %d", len(created))
	}
	sticker, ok := created[0]["sticker"].(map[string]any)
	if !ok || sticker["name"] != "heart" {
		t.Fatalf("expected sticker details in response, got %#v", created[0])
	}

	resp = doRequest(t, env.ts, http.MethodGet, fmt.Sprintf("/api/decorations/image/%d", env.image.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if listed := decodeList(t, resp); len(listed) != 2 {
		t.Fatalf("expected 2 listed decorations, got %d", len(listed))
	}
}

func TestPlaceDecorationsQuotaExceeded(t *testing.T) {
	env := newTestEnv(t)

	bulk := make([]map[string]any, 49)
	for i := range bulk {
		bulk[i] = item(env.heart.ID, i)
	}
	resp := doRequest(t, env.ts, http.MethodPost, "/api/decorations", env.placePayload(bulk...))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	resp = doRequest(t, env.ts, http.MethodPost, "/api/decorations",
		env.placePayload(item(env.heart.ID, 1), item(env.star.ID, 2)))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}
}

func TestPlaceDecorationsUnknownSticker(t *testing.T) {
	env := newTestEnv(t)
	resp := doRequest(t, env.ts, http.MethodPost, "/api/decorations", env.placePayload(item(9999, 1)))
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, resp.StatusCode)
	}
}

func TestPlaceDecorationsUnknownImage(t *testing.T) {
	env := newTestEnv(t)
	payload := map[string]any{
		"postImageId": 9999,
		"userId":      env.placer.ID,
		"decorations": []map[string]any{item(env.heart.ID, 1)},
	}
	resp := doRequest(t, env.ts, http.MethodPost, "/api/decorations", payload)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestPlaceDecorationsValidation(t *testing.T) {
	env := newTestEnv(t)

	empty := map[string]any{
		"postImageId": env.image.ID,
		"userId":      env.placer.ID,
		"decorations": []map[string]any{},
	}
	resp := doRequest(t, env.ts, http.MethodPost, "/api/decorations", empty)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d for empty batch, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	badScale := item(env.heart.ID, 1)
	badScale["scale"] = 0.0
	resp = doRequest(t, env.ts, http.MethodPost, "/api/decorations", env.placePayload(badScale))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d for zero scale, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestUpdateDecorationDeniedForStranger(t *testing.T) {
	env := newTestEnv(t)

	resp := doRequest(t, env.ts, http.MethodPost, "/api/decorations", env.placePayload(item(env.heart.ID, 1)))
	created := decodeList(t, resp)
	id := uint(created[0]["decorationId"].(float64))
	stranger := env.store.AddUser("nosy")

	update := map[string]any{"posX": 1.0, "posY": 2.0, "scale": 1.5, "rotation": 10.0}
	resp = doRequest(t, env.ts, http.MethodPut,
		fmt.Sprintf("/api/decorations/%d?currentUserId=%d", id, stranger.ID), update)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, resp.StatusCode)
	}
}

func TestUpdateDecorationByPlacer(t *testing.T) {
	env := newTestEnv(t)

	resp := doRequest(t, env.ts, http.MethodPost, "/api/decorations", env.placePayload(item(env.heart.ID, 1)))
	created := decodeList(t, resp)
	id := uint(created[0]["decorationId"].(float64))

	update := map[string]any{"posX": 99.0, "posY": -3.5, "scale": 2.0, "rotation": 180.0}
	resp = doRequest(t, env.ts, http.MethodPut,
		fmt.Sprintf("/api/decorations/%d?currentUserId=%d", id, env.placer.ID), update)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doRequest(t, env.ts, http.MethodGet, fmt.Sprintf("/api/decorations/image/%d", env.image.ID), nil)
	listed := decodeList(t, resp)
	if listed[0]["posX"].(float64) != 99.0 {
		t.Fatalf("expected updated position, got %#v", listed[0])
	}
}

func TestUpdateDecorationRequiresUserID(t *testing.T) {
	env := newTestEnv(t)
	update := map[string]any{"posX": 1.0, "posY": 2.0, "scale": 1.0, "rotation": 0.0}
	resp := doRequest(t, env.ts, http.MethodPut, "/api/decorations/1", update)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestDeleteDecorationByPostOwner(t *testing.T) {
	env := newTestEnv(t)

	resp := doRequest(t, env.ts, http.MethodPost, "/api/decorations", env.placePayload(item(env.heart.ID, 1)))
	created := decodeList(t, resp)
	id := uint(created[0]["decorationId"].(float64))

	resp = doRequest(t, env.ts, http.MethodDelete,
		fmt.Sprintf("/api/decorations/%d?currentUserId=%d", id, env.owner.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doRequest(t, env.ts, http.MethodDelete,
		fmt.Sprintf("/api/decorations/%d?currentUserId=%d", id, env.owner.ID), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d on repeat delete, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestListStickers(t *testing.T) {
	env := newTestEnv(t)
	resp := doRequest(t, env.ts, http.MethodGet, "/api/stickers", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if list := decodeList(t, resp); len(list) != 2 {
		t.Fatalf("expected 2 stickers, got %d", len(list))
	}
}

func TestCascadeImageRoute(t *testing.T) {
	env := newTestEnv(t)

	doRequest(t, env.ts, http.MethodPost, "/api/decorations", env.placePayload(item(env.heart.ID, 1)))
	resp := doRequest(t, env.ts, http.MethodDelete,
		fmt.Sprintf("/api/internal/images/%d/decorations", env.image.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doRequest(t, env.ts, http.MethodGet, fmt.Sprintf("/api/decorations/image/%d", env.image.ID), nil)
	if listed := decodeList(t, resp); len(listed) != 0 {
		t.Fatalf("expected empty image after cascade, got %d", len(listed))
	}
}

func TestInvalidJSONBody(t *testing.T) {
	env := newTestEnv(t)
	req, err := http.NewRequest(http.MethodPost, env.ts.URL+"/api/decorations", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	resp := doRequest(t, env.ts, http.MethodGet, "/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}
