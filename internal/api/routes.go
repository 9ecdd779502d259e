package api

import (
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Services bundles what the routes dispatch to.
type Services struct {
	Auth            service.AuthService
	Clients         service.ClientService
	Workouts        service.WorkoutService
	GroupClasses    service.GroupClassService
	Instructors     service.InstructorService
	FitnessCategory service.FitnessCategoryService
	Lookups         service.LookupService
}

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	storeTimeout time.Duration,
	paging Paging,
	services Services,
) {
	authHandler := NewAuthHandler(services.Auth)
	clientHandler := NewClientHandler(services.Clients, paging)
	workoutHandler := NewWorkoutHandler(services.Workouts, paging)
	classHandler := NewGroupClassHandler(services.GroupClasses, paging)
	instructorHandler := NewInstructorHandler(services.Instructors, paging)
	catalogHandler := NewCatalogHandler(services.FitnessCategory, services.Lookups)

	staffOnly := RoleMiddleware(domain.StaffRoles...)
	supervisors := RoleMiddleware(domain.RoleSupervisor, domain.RoleAdmin)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.Use(TimeoutMiddleware(storeTimeout))
	apiV1.POST("/auth/login", authHandler.Login)

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/me", authHandler.Me)
		protected.POST("/auth/register", adminOnly, authHandler.Register)

		// --- Clients ---
		// Client logins reach only their own record; the service scopes them.
		clients := protected.Group("/clients")
		{
			clients.GET("", clientHandler.ListClients)
			clients.POST("", staffOnly, clientHandler.CreateClient)
			clients.GET("/:clientId", clientHandler.GetClient)
			clients.PUT("/:clientId", staffOnly, clientHandler.UpdateClient)
			clients.DELETE("/:clientId", supervisors, clientHandler.DeleteClient)

			clients.POST("/:clientId/photo/upload-url", staffOnly, clientHandler.RequestPhotoUploadURL)
			clients.POST("/:clientId/photo/confirm", staffOnly, clientHandler.ConfirmPhotoUpload)
			clients.GET("/:clientId/photo", clientHandler.GetPhotoURL)
			clients.DELETE("/:clientId/photo", staffOnly, clientHandler.RemovePhoto)

			clients.GET("/:clientId/workouts", workoutHandler.GetWorkoutsForClient)
		}

		// --- Workouts ---
		workouts := protected.Group("/workouts")
		{
			workouts.POST("", workoutHandler.CreateWorkout)
			workouts.GET("/:workoutId", workoutHandler.GetWorkout)
			workouts.PUT("/:workoutId", workoutHandler.UpdateWorkout)
			workouts.DELETE("/:workoutId", supervisors, workoutHandler.DeleteWorkout)
			workouts.GET("/:workoutId/exercises", workoutHandler.GetExerciseChoices)
		}

		// --- Group classes ---
		classes := protected.Group("/group-classes")
		{
			classes.GET("", classHandler.ListGroupClasses)
			classes.POST("", staffOnly, classHandler.CreateGroupClass)
			classes.GET("/:classId", classHandler.GetGroupClass)
			classes.PUT("/:classId", staffOnly, classHandler.UpdateGroupClass)
			classes.DELETE("/:classId", supervisors, classHandler.DeleteGroupClass)
			classes.GET("/:classId/enrollment", staffOnly, classHandler.GetEnrollmentChoices)
		}

		// --- Instructors ---
		instructors := protected.Group("/instructors")
		instructors.Use(staffOnly)
		{
			instructors.GET("", instructorHandler.ListInstructors)
			instructors.GET("/options", instructorHandler.GetInstructorOptions)
			instructors.POST("", supervisors, instructorHandler.CreateInstructor)
			instructors.GET("/:instructorId", instructorHandler.GetInstructor)
			instructors.PUT("/:instructorId", supervisors, instructorHandler.UpdateInstructor)
			instructors.DELETE("/:instructorId", adminOnly, instructorHandler.DeleteInstructor)

			instructors.POST("/:instructorId/documents/upload-url", supervisors, instructorHandler.RequestDocumentUploadURL)
			instructors.POST("/:instructorId/documents", supervisors, instructorHandler.ConfirmDocumentUpload)
		}

		documents := protected.Group("/instructor-documents")
		documents.Use(staffOnly)
		{
			documents.GET("", instructorHandler.ListDocuments)
			documents.GET("/:documentId/download-url", instructorHandler.GetDocumentURL)
			documents.PATCH("/:documentId", supervisors, instructorHandler.UpdateDocumentDescription)
			documents.DELETE("/:documentId", adminOnly, instructorHandler.DeleteDocument)
		}

		// --- Fitness categories & lookups ---
		categories := protected.Group("/fitness-categories")
		{
			categories.GET("", catalogHandler.ListCategories)
			categories.POST("", staffOnly, catalogHandler.CreateCategory)
			categories.GET("/:categoryId", catalogHandler.GetCategory)
			categories.PUT("/:categoryId", staffOnly, catalogHandler.UpdateCategory)
			categories.DELETE("/:categoryId", adminOnly, catalogHandler.DeleteCategory)
		}

		lookups := protected.Group("/lookups")
		{
			lookups.GET("/membership-types", catalogHandler.GetMembershipTypes)
			lookups.GET("/membership-types/:typeId/standard-fee", catalogHandler.GetStandardFee)
			lookups.GET("/class-times", catalogHandler.GetClassTimes)
			lookups.GET("/exercises", catalogHandler.GetExercises)
		}
	}
}
