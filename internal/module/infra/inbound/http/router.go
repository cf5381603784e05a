package http

import "github.com/gin-gonic/gin"

func RegisterModuleRoutes(r gin.IRouter, handler *ModuleHandler) {
	modules := r.Group("/modules")
	{
		modules.GET("", handler.ListModules)
		modules.PUT("/:key", handler.UpdateModule)
		modules.POST("/:key/toggle", handler.ToggleModule)
	}
}
