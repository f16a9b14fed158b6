package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"hackathon-manager/internal/http/v1/handler"
	"hackathon-manager/internal/service"
)

// HackathonRouter owns the /hackathons subtree, including the nested team
// and submission collections that are scoped by hackathon slug.
type HackathonRouter struct {
	hackathonHandler  *handler.HackathonHandler
	teamHandler       *handler.TeamHandler
	submissionHandler *handler.SubmissionHandler
}

func NewHackathonRouter(
	hackathonService *service.HackathonService,
	teamService *service.TeamService,
	submissionService *service.SubmissionService,
	log *slog.Logger,
) *HackathonRouter {
	return &HackathonRouter{
		hackathonHandler:  handler.NewHackathonHandler(hackathonService, log),
		teamHandler:       handler.NewTeamHandler(teamService, log),
		submissionHandler: handler.NewSubmissionHandler(submissionService, log),
	}
}

func (hr *HackathonRouter) SetupRoutes(r chi.Router) {

	r.Route("/hackathons", func(r chi.Router) {
		r.Get("/", hr.hackathonHandler.ListHackathons)
		r.Post("/", hr.hackathonHandler.CreateHackathon)

		r.Route("/{slug}", func(r chi.Router) {
			r.Get("/", hr.hackathonHandler.GetHackathon)
			r.Put("/", hr.hackathonHandler.UpdateHackathon)
			r.Delete("/", hr.hackathonHandler.DeleteHackathon)

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", hr.teamHandler.ListTeams)
				r.Post("/", hr.teamHandler.CreateTeam)
				r.Patch("/join/{teamCode}", hr.teamHandler.JoinTeam)
			})

			r.Route("/submissions", func(r chi.Router) {
				r.Get("/", hr.submissionHandler.ListSubmissions)
				r.Post("/", hr.submissionHandler.CreateSubmission)
			})
		})
	})

}
