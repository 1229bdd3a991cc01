package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"carsite-backend/helper"
	"carsite-backend/middleware"
	"carsite-backend/models"
	"carsite-backend/services"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"
	"gorm.io/gorm"
)

var httpHelper = helper.NewHTTPHelper()

// CarHandler is the JSON API surface for listings.
type CarHandler struct {
	carService services.CarService
}

func NewCarHandler(carService services.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

func carResponses(cars []models.Car) []models.CarResponse {
	out := make([]models.CarResponse, 0, len(cars))
	for _, car := range cars {
		out = append(out, models.NewCarResponse(car))
	}
	return out
}

func (h *CarHandler) GetCars(c *gin.Context) {
	var params models.CarListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = 10
	}

	cars, total, err := h.carService.GetCars(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cars":   carResponses(cars),
		"total":  total,
		"paging": httpHelper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

func (h *CarHandler) GetCar(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car ID"})
		return
	}

	car, err := h.carService.GetCar(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, models.NewCarResponse(*car))
}

func (h *CarHandler) CreateCar(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := httpHelper.Validate.Struct(req); err != nil {
		httpHelper.SendValidationError(c, err.(validator.ValidationErrors))
		return
	}

	car, err := h.carService.CreateCar(req, userID.(uint))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, models.NewCarResponse(*car))
}

func (h *CarHandler) UpdateCar(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car ID"})
		return
	}

	var req models.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := httpHelper.Validate.Struct(req); err != nil {
		httpHelper.SendValidationError(c, err.(validator.ValidationErrors))
		return
	}

	car, err := h.carService.UpdateCar(uint(id), req, actor)
	if err != nil {
		// Outside the candidate set reads the same as missing.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.NewCarResponse(*car))
}

// PatchCar applies a partial update; absent fields keep their stored
// values, so `{"status":"sold"}` alone is a valid body.
func (h *CarHandler) PatchCar(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car ID"})
		return
	}

	var req models.CarPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := httpHelper.Validate.Struct(req); err != nil {
		httpHelper.SendValidationError(c, err.(validator.ValidationErrors))
		return
	}

	car, err := h.carService.PatchCar(uint(id), req, actor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.NewCarResponse(*car))
}

func (h *CarHandler) DeleteCar(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car ID"})
		return
	}

	if err := h.carService.DeleteCar(uint(id), actor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetExpensive lists cars priced above the threshold.
func (h *CarHandler) GetExpensive(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	cars, total, err := h.carService.GetExpensive(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cars":   carResponses(cars),
		"total":  total,
		"paging": httpHelper.GeneratePaging(c, 0, 0, limit, page, int(total)),
	})
}

// MarkSold flips the car's status; ownership is not checked here.
func (h *CarHandler) MarkSold(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid car ID"})
		return
	}

	car, err := h.carService.MarkSold(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, models.NewCarResponse(*car))
}
