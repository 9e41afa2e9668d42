package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Srinivasc16/tempx/internal/server/handlers"
	"github.com/Srinivasc16/tempx/internal/server/middleware"
)

// New wires handlers and middleware into an HTTP router.
func New(handler *handlers.Handler, mw *middleware.Manager) http.Handler {
	router := gin.Default()
	router.Use(mw.CORS())
	router.Use(mw.RateLimit())

	router.GET("/", handler.Home)
	router.GET("/health", handler.Health)

	v1 := router.Group("/api/v1")
	{
		students := v1.Group("/students")
		{
			students.GET("", handler.GetAllStudents)
			students.GET("/:rollno", handler.GetStudentByRoll)
			students.GET("/dept/:dept", handler.GetStudentsByDept)
			students.GET("/crt/:batch", handler.GetStudentsByCRT)
		}

		average := v1.Group("/average")
		{
			average.GET("/overall", handler.GetOverallAverage)
			average.GET("/platform/:platform", handler.GetPlatformAverage)
			average.GET("/student/:rollno", handler.GetStudentAverage)
			average.GET("/dept/:dept", handler.GetDepartmentAverage)
		}

		topper := v1.Group("/topper")
		{
			topper.GET("/platform/:platform", handler.GetPlatformTopper)
		}

		uploads := v1.Group("/uploads")
		{
			uploads.POST("", handler.UploadResults)
			uploads.GET("", handler.ListUploads)
			uploads.GET("/archives", handler.ListArchives)
		}
	}

	return router
}
