package application

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	domainerrors "helvetia/contexts/studio/clip-service/domain/errors"
	"helvetia/contexts/studio/clip-service/ports"
)

type TrimInput struct {
	UserID       string
	CampaignID   string
	FileName     string
	Media        []byte
	StartSeconds float64
	EndSeconds   float64
	// SubtitlesSRT, when non-empty, is burned into the output.
	SubtitlesSRT string
	OnProgress   func(float64)
}

type TrimResult struct {
	ObjectKey       string
	StorageRef      string
	DurationSeconds float64
	SizeBytes       int
}

// Service trims clips through the media engine. Jobs are serialized:
// the engine's virtual filesystem is shared, so a second trim waits for
// the first to finish.
type Service struct {
	Runner      ports.Runner
	Uploader    ports.ObjectUploader
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger

	mu sync.Mutex
}

func (s *Service) Trim(ctx context.Context, input TrimInput) (TrimResult, error) {
	logger := resolveLogger(s.Logger)

	input.UserID = strings.TrimSpace(input.UserID)
	input.FileName = strings.TrimSpace(input.FileName)
	if input.UserID == "" || len(input.Media) == 0 {
		return TrimResult{}, domainerrors.ErrInvalidClipInput
	}
	if input.StartSeconds < 0 || input.EndSeconds <= input.StartSeconds {
		return TrimResult{}, domainerrors.ErrInvalidTrimRange
	}

	jobID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return TrimResult{}, fmt.Errorf("generate job id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inputName := "in-" + jobID + ".mp4"
	outputName := "out-" + jobID + ".mp4"
	subsName := "subs-" + jobID + ".srt"

	temps := []string{inputName, outputName}
	defer func() {
		// Temp buffers are removed whether the trim succeeded or not.
		for _, name := range temps {
			if err := s.Runner.Remove(name); err != nil {
				logger.Warn("temp cleanup failed",
					"event", "clip_temp_cleanup_failed",
					"module", "studio/clip-service",
					"layer", "application",
					"name", name,
					"error", err,
				)
			}
		}
	}()

	if err := s.Runner.WriteInput(inputName, input.Media); err != nil {
		return TrimResult{}, fmt.Errorf("write input: %w", err)
	}

	args := []string{
		"-i", inputName,
		"-ss", formatSeconds(input.StartSeconds),
		"-to", formatSeconds(input.EndSeconds),
	}
	if input.SubtitlesSRT != "" {
		if err := s.Runner.WriteInput(subsName, []byte(input.SubtitlesSRT)); err != nil {
			return TrimResult{}, fmt.Errorf("write subtitles: %w", err)
		}
		temps = append(temps, subsName)
		args = append(args, "-vf", "subtitles="+subsName)
	}
	args = append(args, outputName)

	if err := s.Runner.Exec(ctx, args, input.OnProgress); err != nil {
		return TrimResult{}, fmt.Errorf("%w: %v", domainerrors.ErrEngineFailure, err)
	}

	output, err := s.Runner.ReadOutput(outputName)
	if err != nil {
		return TrimResult{}, fmt.Errorf("read output: %w", err)
	}

	key := fmt.Sprintf("clips/%s/%s.mp4", input.UserID, jobID)
	ref, err := s.Uploader.Put(ctx, key, output, "video/mp4")
	if err != nil {
		return TrimResult{}, fmt.Errorf("upload clip: %w", err)
	}

	duration := input.EndSeconds - input.StartSeconds
	logger.Info("clip trimmed",
		"event", "clip_trimmed",
		"module", "studio/clip-service",
		"layer", "application",
		"user_id", input.UserID,
		"job_id", jobID,
		"duration_s", duration,
		"size", len(output),
	)
	return TrimResult{
		ObjectKey:       key,
		StorageRef:      ref,
		DurationSeconds: duration,
		SizeBytes:       len(output),
	}, nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
