package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.feed.State())
}

// RefreshPosts blocks until the reload resolves and returns the new state.
// A failed reload keeps the previous posts and answers 502.
func (h *Handlers) RefreshPosts(w http.ResponseWriter, r *http.Request) {
	if err := h.feed.Refresh(r.Context()); err != nil {
		writeError(w, r, http.StatusBadGateway, "refresh_failed", "posts could not be reloaded")
		return
	}
	writeJSON(w, r, http.StatusOK, h.feed.State())
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.feed.Like(id) {
		writeError(w, r, http.StatusNotFound, "post_not_found", "no post with that id")
		return
	}
	post, _ := h.feed.Post(id)
	writeJSON(w, r, http.StatusOK, post)
}

// FundPost validates the amount, submits the payment and credits the post.
func (h *Handlers) FundPost(w http.ResponseWriter, r *http.Request) {
	id, amount, ok := readFunding(w, r)
	if !ok {
		return
	}
	if _, found := h.feed.Post(id); !found {
		writeError(w, r, http.StatusNotFound, "post_not_found", "no post with that id")
		return
	}

	txID := h.pay(r, "post:"+id, amount)
	if !h.feed.Fund(id, amount) {
		writeError(w, r, http.StatusNotFound, "post_not_found", "no post with that id")
		return
	}
	post, _ := h.feed.Post(id)
	writeJSON(w, r, http.StatusOK, fundResponse{TransactionID: txID, State: post})
}
