package v1

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"hackathon-manager/internal/http/v1/router"
	"hackathon-manager/internal/service"
)

type Router interface {
	SetupRoutes(r chi.Router)
}

type RouterDependencies struct {
	HackathonService  *service.HackathonService
	TeamService       *service.TeamService
	SubmissionService *service.SubmissionService
}

func SetupRoutes(r chi.Router, deps *RouterDependencies, log *slog.Logger) {
	routers := []Router{
		router.NewHackathonRouter(deps.HackathonService, deps.TeamService, deps.SubmissionService, log),
		router.NewTeamRouter(deps.TeamService, log),
		router.NewSubmissionRouter(deps.SubmissionService, log),
	}

	for _, serviceRouter := range routers {
		serviceRouter.SetupRoutes(r)
	}
}
