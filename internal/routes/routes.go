package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"signa-dashboard/internal/handlers"
	"signa-dashboard/internal/middleware"
	"signa-dashboard/pkg/utils"
)

// Options adalah pengaturan middleware global
type Options struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, opts Options) {
	r.Use(middleware.CORSMiddleware(opts.CORSOrigins))
	if opts.RateLimitRPS > 0 {
		r.Use(middleware.RateLimitMiddleware(opts.RateLimitRPS, opts.RateLimitBurst))
	}

	r.GET("/ping", func(c *gin.Context) {
		utils.APIResponse(c, http.StatusOK, true, "Server OK!", nil)
	})

	sm := h.Session()
	requireSession := middleware.RequireSession(sm, h.TokenSecret())

	// Grouping API dengan Versi (v1)
	api := r.Group("/api/v1")
	{
		// Grouping Auth
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Login)
			auth.POST("/logout", requireSession, h.Logout)
			auth.GET("/me", requireSession, h.Me)
			auth.POST("/check", requireSession, h.Check)
		}

		// PROTECTED ROUTES (Harus Login)
		protected := api.Group("/")
		protected.Use(requireSession)
		{
			protected.GET("/doctors", h.GetDoctors)
			protected.POST("/doctors", h.AddDoctor)
			protected.POST("/doctors/register", middleware.SuperOnly(sm), h.RegisterDoctor)

			// MODULE PASIEN
			protected.GET("/patients", h.GetPatients)
			protected.POST("/patients", h.AddPatient)
			protected.GET("/patients/:id/histories", h.GetPatientHistories)

			// MODULE REKAM MEDIS
			protected.GET("/histories", h.GetHistories)
			protected.POST("/histories", h.AddHistory)
			protected.GET("/histories/:id/visits", h.GetHistoryVisits)
			protected.GET("/visits", h.GetVisits)
			protected.POST("/visits", h.AddVisit)
			protected.GET("/diagnoses", h.GetDiagnoses)
			protected.POST("/diagnoses", h.AddDiagnosis)
			protected.POST("/rppg", h.AnalyzeRPPG)

			// MODULE IGD
			protected.POST("/emergency", h.RegisterEmergency)
			protected.GET("/triage", h.GetTriageQueue)
			protected.GET("/dashboard/stats", h.GetDashboardStats)
		}
	}
}
