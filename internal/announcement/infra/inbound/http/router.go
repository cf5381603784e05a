package http

import "github.com/gin-gonic/gin"

func RegisterAnnouncementRoutes(r gin.IRouter, handler *AnnouncementHandler) {
	announcements := r.Group("/announcements")
	{
		announcements.POST("", handler.CreateAnnouncement)
		announcements.GET("", handler.ListAnnouncements)
		announcements.GET("/:id", handler.GetAnnouncement)
		announcements.PUT("/:id", handler.UpdateAnnouncement)
		announcements.POST("/:id/approve", handler.ApproveAnnouncement)
		announcements.POST("/:id/reject", handler.RejectAnnouncement)
		announcements.DELETE("/:id", handler.DeleteAnnouncement)
	}
}
