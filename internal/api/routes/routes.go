package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobportal/internal/api/handlers"
	"github.com/yoockh/jobportal/internal/api/middleware"
	"github.com/yoockh/jobportal/internal/auth"
)

type Deps struct {
	Tokens *auth.TokenManager

	Auth         *handlers.AuthHandler
	JobSeeker    *handlers.JobSeekerHandler
	Employer     *handlers.EmployerHandler
	Job          *handlers.JobHandler
	Application  *handlers.ApplicationHandler
	Bookmark     *handlers.BookmarkHandler
	AI           *handlers.AIHandler
	Notification *handlers.NotificationHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	authed := middleware.JWTAuth(d.Tokens)
	seeker := []gin.HandlerFunc{authed, middleware.RequireJobSeeker()}
	employer := []gin.HandlerFunc{authed, middleware.RequireEmployer()}

	api := r.Group("/api")

	a := api.Group("/auth")
	a.POST("/login", d.Auth.Login)
	a.POST("/logout", d.Auth.Logout)
	a.GET("/me", authed, d.Auth.Me)
	a.PUT("/update", authed, d.Auth.Update)

	js := api.Group("/jobseekers")
	js.POST("/register", d.JobSeeker.Register)
	js.PUT("/update", append(seeker, d.JobSeeker.Update)...)
	js.GET("/me", append(seeker, d.JobSeeker.Me)...)

	em := api.Group("/employers")
	em.POST("/register", d.Employer.Register)
	em.PUT("/update", append(employer, d.Employer.Update)...)
	em.GET("/me", append(employer, d.Employer.Me)...)
	em.GET("/public/:companyId", d.Employer.Public)

	jobs := api.Group("/jobs")
	jobs.GET("", d.Job.List)
	jobs.GET("/employer/my-jobs", append(employer, d.Job.MyJobs)...)
	jobs.POST("/create", append(employer, d.Job.Create)...)
	jobs.PUT("/update/:jobId", append(employer, d.Job.Update)...)
	jobs.DELETE("/delete/:jobId", append(employer, d.Job.Delete)...)
	jobs.PATCH("/toggle/:jobId", append(employer, d.Job.Toggle)...)
	jobs.GET("/:jobId", d.Job.Get)

	ap := api.Group("/applicants")
	ap.POST("/apply/:jobId", append(seeker, d.Application.Apply)...)
	ap.GET("/my-applications", append(seeker, d.Application.MyApplications)...)
	ap.GET("/employer/applicants", append(employer, d.Application.EmployerApplicants)...)
	ap.PATCH("/status/:applicationId", append(employer, d.Application.UpdateStatus)...)

	bm := api.Group("/bookmarks", seeker...)
	bm.GET("", d.Bookmark.List)
	bm.GET("/check/:jobId", d.Bookmark.Check)
	bm.POST("/:jobId", d.Bookmark.Add)
	bm.DELETE("/:jobId", d.Bookmark.Remove)

	ai := api.Group("/ai")
	ai.POST("/resume-analysis", append(seeker, d.AI.ResumeAnalysis)...)
	ai.POST("/job-match", append(seeker, d.AI.JobMatch)...)
	ai.GET("/usage", append(seeker, d.AI.Usage)...)
	ai.GET("/history", append(seeker, d.AI.History)...)
	ai.POST("/job-description", append(employer, d.AI.JobDescription)...)

	// WebSocket
	api.GET("/notifications/ws", append(seeker, d.Notification.Stream)...)
}
