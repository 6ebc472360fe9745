package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods("GET")

	r.HandleFunc("/profile", h.getProfile).Methods("GET")
	r.HandleFunc("/profile", h.patchProfile).Methods("PATCH")

	r.HandleFunc("/feed", h.getFeed).Methods("GET")
	r.HandleFunc("/feed/stream", h.stream).Methods("GET")
	r.HandleFunc("/feed/{id:[0-9]+}/like", h.toggleLike).Methods("POST")
	r.HandleFunc("/friends", h.getFriends).Methods("GET")
	r.HandleFunc("/notifications", h.getNotifications).Methods("GET")

	r.HandleFunc("/connect", h.getConnect).Methods("GET")
	r.HandleFunc("/connect/permission", h.requestPermission).Methods("POST")
	r.HandleFunc("/connect/capture", h.connectCapture).Methods("POST")
	r.HandleFunc("/connect/retake", h.connectRetake).Methods("POST")
	r.Handle("/connect/submit", h.limited(http.HandlerFunc(h.connectSubmit))).Methods("POST")

	r.HandleFunc("/camera", h.getCamera).Methods("GET")
	r.HandleFunc("/camera/capture", h.cameraCapture).Methods("POST")
	r.HandleFunc("/camera/swap", h.cameraSwap).Methods("POST")
	r.HandleFunc("/camera/submit", h.cameraSubmit).Methods("POST")

	r.Use(h.logRequests)
	return r
}
