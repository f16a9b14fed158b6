package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"hackathon-manager/internal/http/v1/handler"
	"hackathon-manager/internal/service"
)

type TeamRouter struct {
	handler *handler.TeamHandler
}

func NewTeamRouter(teamService *service.TeamService, log *slog.Logger) *TeamRouter {
	return &TeamRouter{
		handler: handler.NewTeamHandler(teamService, log),
	}
}

func (tr *TeamRouter) SetupRoutes(r chi.Router) {

	r.Route("/teams/{teamCode}", func(r chi.Router) {
		r.Get("/", tr.handler.GetTeam)
		r.Put("/", tr.handler.UpdateTeam)
		r.Delete("/", tr.handler.DeleteTeam)

		r.Patch("/member-exit/{userID}", tr.handler.MemberExit)
	})

}
