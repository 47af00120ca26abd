package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/machineapp/machine-backend/internal/handlers"
	"github.com/machineapp/machine-backend/internal/middleware"
	"github.com/machineapp/machine-backend/internal/services"
)

// Setup mounts every endpoint under /api. Account management routes
// require the bearer credential issued at login; the hierarchy and auth
// flows are open.
func Setup(r *chi.Mux, h *handlers.Handler, sessions *services.Sessions) {
	r.Route("/api", func(api chi.Router) {
		api.Route("/country", func(cr chi.Router) {
			cr.Post("/create", h.CreateCountry)
			cr.Post("/list", h.ListCountries)
			cr.Get("/{id}", h.GetCountry)
			cr.Post("/{id}", h.EditCountry)
			cr.Delete("/{id}", h.DeleteCountry)
		})

		api.Route("/state", func(sr chi.Router) {
			sr.Post("/create", h.CreateState)
			sr.Post("/getAllStates", h.ListStates)
			sr.Get("/get/{id}", h.GetStateDetail)
			sr.Get("/{id}", h.GetState)
			sr.Post("/{id}", h.EditState)
			sr.Delete("/{id}", h.DeleteState)
		})

		api.Route("/city", func(cr chi.Router) {
			cr.Post("/create", h.CreateCity)
			cr.Post("/list", h.ListCities)
			cr.Get("/get/{id}", h.GetCityDetail)
			cr.Get("/{id}", h.GetCity)
			cr.Post("/{id}", h.EditCity)
			cr.Delete("/{id}", h.DeleteCity)
		})

		api.Route("/user", func(ur chi.Router) {
			ur.Post("/create", h.Signup)
			ur.With(middleware.RequireAuth(sessions)).Get("/{id}", h.GetUser)
			ur.With(middleware.RequireAuth(sessions)).Post("/{id}", h.EditUser)
			ur.With(middleware.RequireAuth(sessions)).Delete("/{id}", h.DeleteUser)
		})

		api.Route("/login", func(lr chi.Router) {
			lr.Post("/create", h.Login)
			lr.Post("/verify-otp", h.VerifyOTP)
		})

		api.Route("/password", func(pr chi.Router) {
			pr.Post("/forget-password", h.ForgetPassword)
			pr.Post("/reset-password", h.ResetPassword)
		})
	})
}
