package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter assembles the REST surface of the diary.
func NewRouter(day *DayHandler, records *RecordHandler, photo *PhotoHandler, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-ID"},
		AllowCredentials: false,
	}))

	api := r.Group("/api/v1", UserID())

	api.GET("/days", day.GetByDate)
	api.POST("/days", day.Create)
	api.PUT("/days/:dayID", day.Update)

	api.GET("/days/:dayID/meals", records.ListMeals)
	api.POST("/days/:dayID/meals", records.CreateMeal)
	api.PUT("/meals/:id", records.UpdateMeal)
	api.DELETE("/meals/:id", records.DeleteMeal)

	api.GET("/days/:dayID/exercises", records.ListExercises)
	api.POST("/days/:dayID/exercises", records.CreateExercise)
	api.PUT("/exercises/:id", records.UpdateExercise)
	api.DELETE("/exercises/:id", records.DeleteExercise)

	api.GET("/days/:dayID/waters", records.ListWaters)
	api.POST("/days/:dayID/waters", records.CreateWater)
	api.PUT("/waters/:id", records.UpdateWater)
	api.DELETE("/waters/:id", records.DeleteWater)

	api.GET("/days/:dayID/sleeps", records.ListSleeps)
	api.POST("/days/:dayID/sleeps", records.CreateSleep)
	api.PUT("/sleeps/:id", records.UpdateSleep)
	api.DELETE("/sleeps/:id", records.DeleteSleep)

	api.GET("/days/:dayID/moods", records.ListMoods)
	api.POST("/days/:dayID/moods", records.CreateMood)
	api.PUT("/moods/:id", records.UpdateMood)
	api.DELETE("/moods/:id", records.DeleteMood)

	api.GET("/days/:dayID/notes", records.ListNotes)
	api.POST("/days/:dayID/notes", records.CreateNote)
	api.PUT("/notes/:id", records.UpdateNote)
	api.DELETE("/notes/:id", records.DeleteNote)

	api.POST("/days/:dayID/photo", photo.Upload)
	api.GET("/meals/:id/processing-status", photo.Status)

	return r
}
