package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"lokalBack/internal/models"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(""))
	customerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleCustomer))
	providerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleProvider))
	adminMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleAdmin))

	mux := pat.New()

	// Auth
	mux.Post("/auth/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/auth/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/auth/refresh", standardMiddleware.ThenFunc(app.userHandler.Refresh))
	mux.Post("/auth/logout", authMiddleware.ThenFunc(app.userHandler.Logout))
	mux.Get("/me", authMiddleware.ThenFunc(app.userHandler.Me))

	// Categories
	mux.Post("/categories", adminMiddleware.ThenFunc(app.categoryHandler.CreateCategory))
	mux.Get("/categories", authMiddleware.ThenFunc(app.categoryHandler.GetAllCategories))
	mux.Get("/categories/:id", authMiddleware.ThenFunc(app.categoryHandler.GetCategoryByID))
	mux.Put("/categories/:id", adminMiddleware.ThenFunc(app.categoryHandler.UpdateCategory))
	mux.Del("/categories/:id", adminMiddleware.ThenFunc(app.categoryHandler.DeleteCategory))
	mux.Post("/categories/:id/icon", adminMiddleware.ThenFunc(app.categoryHandler.UploadIcon))

	// Providers. The /providers/me routes must be registered before the
	// parameterized ones so pat does not capture "me" as an id.
	mux.Get("/providers/me/dashboard", providerMiddleware.ThenFunc(app.providerHandler.Dashboard))
	mux.Get("/providers/me", providerMiddleware.ThenFunc(app.providerHandler.MyProfile))
	mux.Put("/providers/me", providerMiddleware.ThenFunc(app.providerHandler.UpdateProfile))
	mux.Post("/providers/me/document", providerMiddleware.ThenFunc(app.providerHandler.UploadDocument))
	mux.Post("/providers/search", authMiddleware.ThenFunc(app.providerHandler.Search))
	mux.Get("/providers/:id/availability", authMiddleware.ThenFunc(app.availabilityHandler.ListForProvider))
	mux.Get("/providers/:id/reviews", authMiddleware.ThenFunc(app.reviewHandler.ListByProvider))
	mux.Get("/providers/:id", authMiddleware.ThenFunc(app.providerHandler.GetProfilePage))

	// Availability management
	mux.Post("/availability", providerMiddleware.ThenFunc(app.availabilityHandler.AddWindow))
	mux.Put("/availability/:id", providerMiddleware.ThenFunc(app.availabilityHandler.UpdateWindow))
	mux.Del("/availability/:id", providerMiddleware.ThenFunc(app.availabilityHandler.RemoveWindow))

	// Bookings
	mux.Post("/bookings", customerMiddleware.ThenFunc(app.bookingHandler.CreateBooking))
	mux.Get("/bookings/mine", customerMiddleware.ThenFunc(app.bookingHandler.ListMine))
	mux.Get("/bookings/assigned", providerMiddleware.ThenFunc(app.bookingHandler.ListForProvider))
	mux.Post("/bookings/:id/cancel", customerMiddleware.ThenFunc(app.bookingHandler.Cancel))
	mux.Post("/bookings/:id/accept", providerMiddleware.ThenFunc(app.bookingHandler.Accept))
	mux.Post("/bookings/:id/reject", providerMiddleware.ThenFunc(app.bookingHandler.Reject))
	mux.Post("/bookings/:id/reschedule", providerMiddleware.ThenFunc(app.bookingHandler.Reschedule))
	mux.Post("/bookings/:id/complete", providerMiddleware.ThenFunc(app.bookingHandler.Complete))
	mux.Get("/bookings/:id", authMiddleware.ThenFunc(app.bookingHandler.GetBooking))

	// Reviews
	mux.Post("/reviews", customerMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get("/reviews/mine", customerMiddleware.ThenFunc(app.reviewHandler.ListMine))

	// Admin
	mux.Get("/admin/dashboard", adminMiddleware.ThenFunc(app.adminHandler.Dashboard))
	mux.Get("/admin/users", adminMiddleware.ThenFunc(app.userHandler.ListUsers))
	mux.Get("/admin/users/:id", adminMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Put("/admin/users/:id/role", adminMiddleware.ThenFunc(app.userHandler.UpdateUserRole))
	mux.Put("/admin/users/:id/active", adminMiddleware.ThenFunc(app.userHandler.SetUserActive))
	mux.Get("/admin/providers/pending", adminMiddleware.ThenFunc(app.providerHandler.ListPending))
	mux.Put("/admin/providers/:id/verify", adminMiddleware.ThenFunc(app.providerHandler.SetVerified))
	mux.Get("/admin/bookings", adminMiddleware.ThenFunc(app.bookingHandler.ListAll))
	mux.Get("/admin/reviews", adminMiddleware.ThenFunc(app.reviewHandler.ListAll))
	mux.Del("/admin/reviews/:id", adminMiddleware.ThenFunc(app.reviewHandler.DeleteReview))

	return mux
}
