package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GarageLog/garage-log-backend/errors"
	"github.com/GarageLog/garage-log-backend/logger"
	"github.com/GarageLog/garage-log-backend/middleware"
	"github.com/GarageLog/garage-log-backend/models"
	"github.com/GarageLog/garage-log-backend/types"
)

type VehicleHandler struct {
	vehicleModel *models.VehicleModel
}

func NewVehicleHandler(model *models.VehicleModel) *VehicleHandler {
	return &VehicleHandler{vehicleModel: model}
}

func (h *VehicleHandler) CreateVehicleHandler(c *gin.Context) {
	log := logger.GetLogger()

	var req types.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	userID := middleware.GetUserID(c)
	if userID == "" {
		middleware.AbortUnauthorized(c, "User not authenticated")
		return
	}

	vehicle, err := h.vehicleModel.CreateVehicle(c.Request.Context(), userID, userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	middleware.Success(c, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) ListVehiclesHandler(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		middleware.AbortUnauthorized(c, "User not authenticated")
		return
	}

	vehicles, err := h.vehicleModel.ListVehicles(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	middleware.Success(c, http.StatusOK, gin.H{"vehicles": vehicles})
}

func (h *VehicleHandler) GetVehicleHandler(c *gin.Context) {
	userID := middleware.GetUserID(c)
	vehicleID := c.Param("id")

	vehicle, err := h.vehicleModel.GetVehicle(c.Request.Context(), userID, vehicleID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	middleware.Success(c, http.StatusOK, vehicle)
}

func (h *VehicleHandler) UpdateVehicleHandler(c *gin.Context) {
	log := logger.GetLogger()

	var req types.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	userID := middleware.GetUserID(c)
	vehicleID := c.Param("id")

	vehicle, err := h.vehicleModel.UpdateVehicle(c.Request.Context(), userID, userID, vehicleID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	middleware.Success(c, http.StatusOK, vehicle)
}

func (h *VehicleHandler) DeleteVehicleHandler(c *gin.Context) {
	userID := middleware.GetUserID(c)
	vehicleID := c.Param("id")

	if err := h.vehicleModel.DeleteVehicle(c.Request.Context(), userID, userID, vehicleID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
