package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", handler(s.getV1Status))
		r.Post("/cycles/{loop}", handler(s.postV1Cycle))

		r.Route("/monitors", func(r chi.Router) {
			r.Get("/", handler(s.getV1Monitors))
			r.Post("/", handler(s.postV1Monitor))
			r.Delete("/{id}", handler(s.deleteV1Monitor))
		})

		r.Route("/bids", func(r chi.Router) {
			r.Post("/", handler(s.postV1Bid))
			r.Post("/{id}/raise", handler(s.postV1BidRaise))
		})

		r.Get("/users/{userID}/bids", handler(s.getV1UserBids))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			writeError(r.Context(), w, err)
		}
	}
}
