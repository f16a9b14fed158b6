package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"hackathon-manager/internal/http/v1/handler"
	"hackathon-manager/internal/service"
)

type SubmissionRouter struct {
	handler *handler.SubmissionHandler
}

func NewSubmissionRouter(submissionService *service.SubmissionService, log *slog.Logger) *SubmissionRouter {
	return &SubmissionRouter{
		handler: handler.NewSubmissionHandler(submissionService, log),
	}
}

func (sr *SubmissionRouter) SetupRoutes(r chi.Router) {

	r.Route("/submissions/{id}", func(r chi.Router) {
		r.Get("/", sr.handler.GetSubmission)
		r.Put("/", sr.handler.UpdateSubmission)
		r.Delete("/", sr.handler.DeleteSubmission)
	})

}
