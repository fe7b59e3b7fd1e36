package usecase

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain/repository"
	"github.com/bikeshare-loader/internal/pkg/errors"
	"github.com/bikeshare-loader/internal/pkg/utils"
	"github.com/bikeshare-loader/internal/pkg/validator"
	"github.com/bikeshare-loader/internal/usecase/dto"
)

const (
	DefaultNearestRadiusKm = 1.0
	DefaultNearestLimit    = 10
	DefaultListLimit       = 100

	// nearestCandidates bounds the bbox prefilter before exact distances
	nearestCandidates = 1000
)

// StationUseCase serves the derived station catalog
type StationUseCase struct {
	stationRepo repository.StationRepository
	logger      *zap.Logger
}

func NewStationUseCase(stationRepo repository.StationRepository, logger *zap.Logger) *StationUseCase {
	return &StationUseCase{
		stationRepo: stationRepo,
		logger:      logger,
	}
}

func (uc *StationUseCase) GetStation(ctx context.Context, id string) (*dto.StationResponse, error) {
	if id == "" {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"station_id": "required"})
	}

	station, err := uc.stationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewStationResponse(station)
	return &resp, nil
}

func (uc *StationUseCase) ListStations(ctx context.Context, req dto.ListStationsRequest) (*dto.StationListResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidRequest, err, validator.Fields(err))
	}
	if req.Limit == 0 {
		req.Limit = DefaultListLimit
	}

	stations, total, err := uc.stationRepo.List(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseError, err, nil)
	}

	resp := &dto.StationListResponse{
		Stations: make([]dto.StationResponse, 0, len(stations)),
		Total:    total,
		Offset:   req.Offset,
		Limit:    req.Limit,
	}
	for _, s := range stations {
		resp.Stations = append(resp.Stations, dto.NewStationResponse(s))
	}
	return resp, nil
}

// NearestStations prefilters by bounding box and ranks by haversine distance
func (uc *StationUseCase) NearestStations(ctx context.Context, req dto.NearestStationsRequest) (*dto.NearestStationsResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"lat": req.Lat,
			"lon": req.Lon,
		})
	}
	if err := validator.Validate(req); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidRequest, err, validator.Fields(err))
	}

	if req.RadiusKm == 0 {
		req.RadiusKm = DefaultNearestRadiusKm
	}
	if req.Limit == 0 {
		req.Limit = DefaultNearestLimit
	}

	box := utils.BoundingBoxAround(req.Lat, req.Lon, req.RadiusKm)
	candidates, err := uc.stationRepo.GetInBoundingBox(ctx, box, nearestCandidates)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseError, err, nil)
	}

	result := make([]dto.StationResponse, 0, len(candidates))
	for _, s := range candidates {
		if !s.HasCoordinates() {
			continue
		}
		resp := dto.NewStationResponse(s)
		d := utils.HaversineDistance(req.Lat, req.Lon, *resp.Lat, *resp.Lon)
		if d > req.RadiusKm {
			continue
		}
		resp.DistanceKm = &d
		result = append(result, resp)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if *result[i].DistanceKm != *result[j].DistanceKm {
			return *result[i].DistanceKm < *result[j].DistanceKm
		}
		return result[i].StationID < result[j].StationID
	})
	if len(result) > req.Limit {
		result = result[:req.Limit]
	}

	uc.logger.Debug("Nearest stations",
		zap.Float64("lat", req.Lat),
		zap.Float64("lon", req.Lon),
		zap.Float64("radius_km", req.RadiusKm),
		zap.Int("candidates", len(candidates)),
		zap.Int("found", len(result)))

	return &dto.NearestStationsResponse{Stations: result, RadiusKm: req.RadiusKm}, nil
}
