package app

import (
	"github.com/vancomm/pcview/internal/handlers"
	"github.com/vancomm/pcview/internal/middleware"
	"github.com/vancomm/pcview/internal/repository"
)

func (a *App) loadRoutes() {
	repo := repository.New(a.db)
	auth := handlers.NewAuth(a.logger, repo, a.cookies, a.jwt)
	trees := handlers.NewTreeHandler(a.logger, repo, a.ws, a.basePath, a.workers)

	p := a.basePath
	a.router.HandleFunc("POST "+p+"/auth/register", auth.Register)
	a.router.HandleFunc("POST "+p+"/auth/login", auth.Login)
	a.router.HandleFunc("POST "+p+"/auth/logout", auth.Logout)
	a.router.HandleFunc("GET "+p+"/auth/status", auth.Status)

	a.router.HandleFunc("POST "+p+"/trees", middleware.RequireAuth(trees.Upload))
	a.router.HandleFunc("GET "+p+"/trees", trees.List)
	a.router.HandleFunc("GET "+p+"/trees/{id}", trees.View)
	a.router.HandleFunc("GET "+p+"/trees/{id}/fragment", trees.Fragment)
	a.router.HandleFunc("GET "+p+"/trees/{id}/verify", trees.Verify)
	a.router.HandleFunc("GET "+p+"/trees/{id}/raw", trees.Raw)
	a.router.HandleFunc("GET "+p+"/trees/{id}/connect", trees.Connect)
	a.router.HandleFunc("DELETE "+p+"/trees/{id}", middleware.RequireAuth(trees.Delete))
}
