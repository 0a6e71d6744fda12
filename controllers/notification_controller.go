package controllers

import (
	"strconv"

	"label/config"
	"label/models"
	"label/response"

	"github.com/gin-gonic/gin"
)

// GetNotifications danh sách thông báo vận hành, mới nhất trước
func GetNotifications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	if err := config.DB.Model(&models.Notification{}).Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var notifications []models.Notification
	if err := config.DB.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&notifications).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithPagination(c, notifications, page, limit, int(total))
}

// MarkNotificationRead đánh dấu một thông báo là đã đọc
func MarkNotificationRead(c *gin.Context) {
	id := c.Param("id")

	var notification models.Notification
	if err := config.DB.First(&notification, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	notification.IsRead = true
	if err := config.DB.Save(&notification).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, notification)
}
