package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/domain"
	"github.com/bikeshare-loader/internal/domain/repository"
	apperrors "github.com/bikeshare-loader/internal/pkg/errors"
)

// FinalizeStages are the database stages that follow the last load
var FinalizeStages = []domain.Stage{
	domain.StageDeduplicate,
	domain.StageDeriveStations,
	domain.StageEnforceIntegrity,
	domain.StageCreateIndexes,
}

// FileNormalizer runs the normalize stage
type FileNormalizer interface {
	Run(ctx context.Context, overwrite bool) (*domain.NormalizeResult, error)
}

// FileLoader runs the load stage
type FileLoader interface {
	Run(ctx context.Context) (*domain.LoadResult, error)
}

// RunOptions selects what a pipeline run does
type RunOptions struct {
	// Force reruns stages that already have a checkpoint
	Force bool

	// Overwrite regenerates normalized files that already exist
	Overwrite bool

	// Only restricts the run to these stages; they still run in pipeline order
	Only []domain.Stage

	// From starts the run at this stage
	From domain.Stage
}

// StageReport - what one stage did during a run
type StageReport struct {
	Stage    domain.Stage  `json:"stage"`
	Status   string        `json:"status"`
	Details  interface{}   `json:"details,omitempty"`
	Duration time.Duration `json:"duration"`
}

// RunReport - summary of a pipeline run
type RunReport struct {
	RunID  string        `json:"run_id"`
	Stages []StageReport `json:"stages"`
}

// PipelineStatus - checkpoint view of the store
type PipelineStatus struct {
	Checkpoints []domain.Checkpoint `json:"checkpoints"`
	Pending     []domain.Stage      `json:"pending"`
	LoadedFiles []domain.LoadedFile `json:"loaded_files"`
}

// PipelineUseCase runs the stages in order and checkpoints each one
type PipelineUseCase struct {
	normalizer  FileNormalizer
	loader      FileLoader
	rides       repository.RideRepository
	stations    repository.StationRepository
	integrity   repository.IntegrityRepository
	checkpoints repository.CheckpointRepository
	logger      *zap.Logger

	stream     repository.StreamRepository
	streamName string
	cache      repository.CacheRepository
}

func NewPipelineUseCase(
	normalizer FileNormalizer,
	loader FileLoader,
	rides repository.RideRepository,
	stations repository.StationRepository,
	integrity repository.IntegrityRepository,
	checkpoints repository.CheckpointRepository,
	logger *zap.Logger,
) *PipelineUseCase {
	return &PipelineUseCase{
		normalizer:  normalizer,
		loader:      loader,
		rides:       rides,
		stations:    stations,
		integrity:   integrity,
		checkpoints: checkpoints,
		logger:      logger,
	}
}

// WithEvents publishes a StageEvent to streamName after every stage
func (uc *PipelineUseCase) WithEvents(stream repository.StreamRepository, streamName string) *PipelineUseCase {
	uc.stream = stream
	uc.streamName = streamName
	return uc
}

// WithStatsCache drops cached statistics once a run changes the store
func (uc *PipelineUseCase) WithStatsCache(cache repository.CacheRepository) *PipelineUseCase {
	uc.cache = cache
	return uc
}

// Run executes the selected stages. A completed stage is skipped unless
// opts.Force is set. The first failing stage stops the run; everything it
// committed before that stays committed.
func (uc *PipelineUseCase) Run(ctx context.Context, opts RunOptions) (*RunReport, error) {
	stages, err := opts.stages()
	if err != nil {
		return nil, err
	}

	report := &RunReport{RunID: uuid.NewString()}
	log := uc.logger.With(zap.String("run_id", report.RunID))
	log.Info("Pipeline run started",
		zap.Strings("stages", stageNames(stages)),
		zap.Bool("force", opts.Force))

	storeChanged := false
	defer func() {
		if storeChanged {
			uc.invalidateStats(ctx, log)
		}
	}()

	for _, stage := range stages {
		if !opts.Force {
			done, err := uc.checkpoints.IsDone(ctx, stage)
			if err != nil {
				return report, fmt.Errorf("check %s checkpoint: %w", stage, err)
			}
			if done {
				log.Info("Stage already completed, skipping", zap.String("stage", string(stage)))
				report.Stages = append(report.Stages, StageReport{Stage: stage, Status: domain.StageStatusSkipped})
				uc.publish(ctx, log, report.RunID, stage, domain.StageStatusSkipped, nil, nil)
				continue
			}
		}

		log.Info("Stage started", zap.String("stage", string(stage)))
		start := time.Now()

		details, err := uc.runStage(ctx, stage, opts)
		elapsed := time.Since(start)
		if stage != domain.StageNormalize {
			storeChanged = true
		}

		if err != nil {
			log.Error("Stage failed",
				zap.String("stage", string(stage)),
				zap.Duration("duration", elapsed),
				zap.Error(err))
			report.Stages = append(report.Stages, StageReport{
				Stage:    stage,
				Status:   domain.StageStatusFailed,
				Details:  details,
				Duration: elapsed,
			})
			uc.publish(ctx, log, report.RunID, stage, domain.StageStatusFailed, details, err)
			return report, fmt.Errorf("stage %s: %w", stage, err)
		}

		log.Info("Stage completed",
			zap.String("stage", string(stage)),
			zap.Duration("duration", elapsed),
			zap.Any("details", details))
		report.Stages = append(report.Stages, StageReport{
			Stage:    stage,
			Status:   domain.StageStatusCompleted,
			Details:  details,
			Duration: elapsed,
		})
		uc.publish(ctx, log, report.RunID, stage, domain.StageStatusCompleted, details, nil)
	}

	log.Info("Pipeline run finished", zap.Int("stages", len(report.Stages)))
	return report, nil
}

// runStage runs one stage. Database stages record their checkpoint in their
// own transaction; file stages are checkpointed here once they succeed.
func (uc *PipelineUseCase) runStage(ctx context.Context, stage domain.Stage, opts RunOptions) (interface{}, error) {
	switch stage {
	case domain.StageNormalize:
		result, err := uc.normalizer.Run(ctx, opts.Overwrite)
		if err != nil {
			return result, err
		}
		return result, uc.checkpoints.Mark(ctx, stage, result)

	case domain.StageLoad:
		result, err := uc.loader.Run(ctx)
		if err != nil {
			return result, err
		}
		return result, uc.checkpoints.Mark(ctx, stage, result)

	case domain.StageDeduplicate:
		return uc.rides.Deduplicate(ctx)

	case domain.StageDeriveStations:
		return uc.stations.DeriveStations(ctx)

	case domain.StageEnforceIntegrity:
		return uc.integrity.Enforce(ctx)

	case domain.StageCreateIndexes:
		return nil, uc.integrity.CreateIndexes(ctx)
	}

	return nil, apperrors.Wrap(apperrors.ErrConfig, fmt.Errorf("unknown stage %q", stage), nil)
}

// Status reports completed stages, the stages still to run and the files loaded so far
func (uc *PipelineUseCase) Status(ctx context.Context) (*PipelineStatus, error) {
	checkpoints, err := uc.checkpoints.List(ctx)
	if err != nil {
		return nil, err
	}

	done := make(map[domain.Stage]struct{}, len(checkpoints))
	for _, cp := range checkpoints {
		done[cp.Stage] = struct{}{}
	}
	pending := make([]domain.Stage, 0)
	for _, stage := range domain.Stages {
		if _, ok := done[stage]; !ok {
			pending = append(pending, stage)
		}
	}

	files, err := uc.rides.LoadedFiles(ctx)
	if err != nil {
		return nil, err
	}

	return &PipelineStatus{
		Checkpoints: checkpoints,
		Pending:     pending,
		LoadedFiles: files,
	}, nil
}

// ResetCheckpoints forgets the given stages, or every stage when none are given.
// Data already committed by those stages is left in place.
func (uc *PipelineUseCase) ResetCheckpoints(ctx context.Context, stages ...domain.Stage) error {
	if err := uc.checkpoints.Reset(ctx, stages...); err != nil {
		return err
	}
	uc.logger.Info("Checkpoints reset", zap.Strings("stages", stageNames(stages)))
	return nil
}

func (uc *PipelineUseCase) publish(
	ctx context.Context,
	log *zap.Logger,
	runID string,
	stage domain.Stage,
	status string,
	details interface{},
	stageErr error,
) {
	if uc.stream == nil {
		return
	}

	event := domain.StageEvent{
		RunID:       runID,
		Stage:       stage,
		Status:      status,
		Details:     details,
		CompletedAt: time.Now().UTC(),
	}
	if stageErr != nil {
		event.Error = stageErr.Error()
	}

	if err := uc.stream.PublishToStream(ctx, uc.streamName, event); err != nil {
		log.Warn("Failed to publish stage event",
			zap.String("stage", string(stage)),
			zap.Error(err))
	}
}

func (uc *PipelineUseCase) invalidateStats(ctx context.Context, log *zap.Logger) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateStats(ctx); err != nil {
		log.Warn("Failed to invalidate statistics cache", zap.Error(err))
	}
}

// stages resolves the options into the ordered list of stages to run
func (o RunOptions) stages() ([]domain.Stage, error) {
	if len(o.Only) > 0 && o.From != "" {
		return nil, apperrors.Wrap(apperrors.ErrConfig, fmt.Errorf("only and from cannot be combined"), nil)
	}

	if len(o.Only) > 0 {
		want := make(map[domain.Stage]struct{}, len(o.Only))
		for _, s := range o.Only {
			if _, ok := domain.ParseStage(string(s)); !ok {
				return nil, apperrors.Wrap(apperrors.ErrConfig, fmt.Errorf("unknown stage %q", s), nil)
			}
			want[s] = struct{}{}
		}
		selected := make([]domain.Stage, 0, len(want))
		for _, s := range domain.Stages {
			if _, ok := want[s]; ok {
				selected = append(selected, s)
			}
		}
		return selected, nil
	}

	if o.From != "" {
		for i, s := range domain.Stages {
			if s == o.From {
				return domain.Stages[i:], nil
			}
		}
		return nil, apperrors.Wrap(apperrors.ErrConfig, fmt.Errorf("unknown stage %q", o.From), nil)
	}

	return domain.Stages, nil
}

func stageNames(stages []domain.Stage) []string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = string(s)
	}
	return names
}
