package controllers

import (
	"time"

	"label/config"
	"label/dto"
	"label/models"
	"label/response"
	"label/validator"

	"github.com/gin-gonic/gin"
)

func CreateEvent(c *gin.Context) {
	var input dto.CreateEventRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	event := models.Event{
		BrandID:         input.BrandID,
		Name:            input.Name,
		Venue:           input.Venue,
		VerificationPin: input.VerificationPin,
		TicketPrice:     input.TicketPrice,
	}
	if input.Date != "" {
		date, err := time.Parse("02/01/2006", input.Date)
		if err != nil {
			response.BadRequest(c, "Định dạng ngày không hợp lệ")
			return
		}
		event.Date = date
	}

	if err := validator.ValidateEvent(&event); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Create(&event).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, event)
}

func GetAllEvents(c *gin.Context) {
	brandIDStr := c.Query("brandId")

	tx := config.DB.Model(&models.Event{}).Preload("Brand")
	if brandIDStr != "" {
		tx = tx.Where("brand_id = ?", brandIDStr)
	}

	var events []models.Event
	if err := tx.Find(&events).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, events)
}

func GetEventDetail(c *gin.Context) {
	id := c.Param("id")

	var event models.Event
	if err := config.DB.Preload("Brand").First(&event, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, event)
}

func UpdateEvent(c *gin.Context) {
	var input dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var event models.Event
	if err := config.DB.First(&event, input.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if input.Name != "" {
		event.Name = input.Name
	}
	if input.Venue != "" {
		event.Venue = input.Venue
	}
	if input.Date != "" {
		date, err := time.Parse("02/01/2006", input.Date)
		if err != nil {
			response.BadRequest(c, "Định dạng ngày không hợp lệ")
			return
		}
		event.Date = date
	}
	if input.VerificationPin != "" {
		event.VerificationPin = input.VerificationPin
	}
	if !input.TicketPrice.IsZero() {
		event.TicketPrice = input.TicketPrice
	}

	if err := config.DB.Save(&event).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, event)
}
