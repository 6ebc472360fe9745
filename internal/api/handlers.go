package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/pkg/formatter"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.profile.Snapshot())
}

type profilePatch struct {
	Handle  *string `json:"handle"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Profile *string `json:"profile"`
}

func (h *Handler) patchProfile(w http.ResponseWriter, r *http.Request) {
	var body profilePatch
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "bad_request", Message: "invalid profile body"})
		return
	}
	updated := h.profile.Update(func(p *domain.Profile) {
		if body.Handle != nil {
			p.Handle = body.Handle
		}
		if body.City != nil {
			p.Location.City = *body.City
		}
		if body.State != nil {
			p.Location.State = *body.State
		}
		if body.Profile != nil {
			p.ProfileImageRef = *body.Profile
		}
	})
	writeJSON(w, http.StatusOK, updated)
}

type feedItem struct {
	domain.Post
	Liked        bool   `json:"liked"`
	DisplayLikes string `json:"displayLikes"`
}

func (h *Handler) item(p domain.Post) feedItem {
	return feedItem{
		Post:         p,
		Liked:        h.likes.Liked(p.ID),
		DisplayLikes: formatter.FormatNumber(h.likes.Likes(p)),
	}
}

func (h *Handler) getFeed(w http.ResponseWriter, r *http.Request) {
	posts := h.feed.Posts()
	items := make([]feedItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, h.item(p))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) toggleLike(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "bad_request", Message: "invalid post id"})
		return
	}
	post, ok := h.feed.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Code: "not_found", Message: "post not found"})
		return
	}
	h.likes.Toggle(post)
	writeJSON(w, http.StatusOK, h.item(post))
}

type friendConnection struct {
	ID       int64           `json:"id"`
	Names    string          `json:"names"`
	Image    string          `json:"image"`
	Location domain.Location `json:"location"`
}

func (h *Handler) getFriends(w http.ResponseWriter, r *http.Request) {
	posts := h.feed.FriendConnections()
	out := make([]friendConnection, 0, len(posts))
	for _, p := range posts {
		out = append(out, friendConnection{
			ID:       p.ID,
			Names:    formatter.JoinNames(p.FriendNames),
			Image:    p.Image.Back,
			Location: p.Location,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.alerts.Recent())
}

func (h *Handler) getConnect(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.connect.Snapshot())
}

func (h *Handler) requestPermission(w http.ResponseWriter, r *http.Request) {
	status, err := h.connect.RequestPermission(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]domain.Permission{"permission": status})
}

func (h *Handler) connectCapture(w http.ResponseWriter, r *http.Request) {
	if err := h.connect.Capture(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.connect.Snapshot())
}

func (h *Handler) connectRetake(w http.ResponseWriter, r *http.Request) {
	if err := h.connect.Retake(); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.connect.Snapshot())
}

func (h *Handler) connectSubmit(w http.ResponseWriter, r *http.Request) {
	post, err := h.connect.Submit(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *Handler) getCamera(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.composer.View())
}

func (h *Handler) cameraCapture(w http.ResponseWriter, r *http.Request) {
	taken, err := h.composer.Capture(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"taken": taken, "camera": h.composer.View()})
}

func (h *Handler) cameraSwap(w http.ResponseWriter, r *http.Request) {
	h.composer.Swap()
	writeJSON(w, http.StatusOK, h.composer.View())
}

func (h *Handler) cameraSubmit(w http.ResponseWriter, r *http.Request) {
	post, err := h.composer.Submit()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}
