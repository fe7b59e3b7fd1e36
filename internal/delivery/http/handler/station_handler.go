package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/pkg/errors"
	"github.com/bikeshare-loader/internal/pkg/utils"
	"github.com/bikeshare-loader/internal/usecase"
	"github.com/bikeshare-loader/internal/usecase/dto"
)

// StationHandler serves the derived station catalog
type StationHandler struct {
	stationUC *usecase.StationUseCase
	logger    *zap.Logger
}

func NewStationHandler(stationUC *usecase.StationUseCase, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		stationUC: stationUC,
		logger:    logger,
	}
}

// ListStations godoc
// @Summary List stations
// @Description Pages through the station catalog ordered by station id
// @Tags Stations
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Page size (max 1000)" default(100)
// @Success 200 {object} utils.SuccessResponse{data=dto.StationListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stations [get]
func (h *StationHandler) ListStations(c *fiber.Ctx) error {
	var req dto.ListStationsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.Wrap(errors.ErrInvalidRequest, err, nil))
	}

	result, err := h.stationUC.ListStations(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:  result.Total,
		Offset: result.Offset,
		Limit:  result.Limit,
	})
}

// GetStation godoc
// @Summary Get a station
// @Tags Stations
// @Produce json
// @Param id path string true "Station id"
// @Success 200 {object} utils.SuccessResponse{data=dto.StationResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id} [get]
func (h *StationHandler) GetStation(c *fiber.Ctx) error {
	result, err := h.stationUC.GetStation(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// NearestStations godoc
// @Summary Nearest stations
// @Description Stations within radius_km of a point, closest first
// @Tags Stations
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius_km query number false "Radius in km (0.1 to 50)" default(1)
// @Param limit query int false "Maximum results (max 100)" default(10)
// @Success 200 {object} utils.SuccessResponse{data=dto.NearestStationsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stations/nearest [get]
func (h *StationHandler) NearestStations(c *fiber.Ctx) error {
	if c.Query("lat") == "" || c.Query("lon") == "" {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"lat": "required",
			"lon": "required",
		}))
	}

	var req dto.NearestStationsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.Wrap(errors.ErrInvalidRequest, err, nil))
	}

	result, err := h.stationUC.NearestStations(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Stations)})
}
