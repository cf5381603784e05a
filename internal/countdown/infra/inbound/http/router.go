package http

import "github.com/gin-gonic/gin"

func RegisterCountdownRoutes(r gin.IRouter, handler *CountdownHandler) {
	countdowns := r.Group("/countdowns")
	{
		countdowns.POST("", handler.CreateCountdown)
		countdowns.GET("", handler.ListCountdowns)
		countdowns.GET("/:id", handler.GetCountdown)
		countdowns.PUT("/:id", handler.UpdateCountdown)
		countdowns.DELETE("/:id", handler.DeleteCountdown)
	}
}
