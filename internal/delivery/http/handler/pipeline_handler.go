package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/pkg/utils"
	"github.com/bikeshare-loader/internal/usecase"
)

type PipelineHandler struct {
	pipelineUC *usecase.PipelineUseCase
	logger     *zap.Logger
}

func NewPipelineHandler(pipelineUC *usecase.PipelineUseCase, logger *zap.Logger) *PipelineHandler {
	return &PipelineHandler{
		pipelineUC: pipelineUC,
		logger:     logger,
	}
}

// GetStatus godoc
// @Summary Pipeline status
// @Description Completed stage checkpoints, stages still pending and the normalized files loaded so far
// @Tags Pipeline
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=usecase.PipelineStatus}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/pipeline/status [get]
func (h *PipelineHandler) GetStatus(c *fiber.Ctx) error {
	status, err := h.pipelineUC.Status(c.Context())
	if err != nil {
		h.logger.Error("Failed to get pipeline status", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, status, nil)
}
