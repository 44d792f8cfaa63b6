package clipservice

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helvetia/contexts/studio/clip-service/application"
	domainerrors "helvetia/contexts/studio/clip-service/domain/errors"
	httptransport "helvetia/contexts/studio/clip-service/transport/http"
)

func sampleMedia() []byte {
	return []byte("not really an mp4 but good enough for the sandbox")
}

func TestTrimProducesDurationEndMinusStart(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	var progress []float64
	result, err := module.Service.Trim(ctx, application.TrimInput{
		UserID:       "creator-1",
		FileName:     "take1.mp4",
		Media:        sampleMedia(),
		StartSeconds: 2.5,
		EndSeconds:   9.0,
		OnProgress:   func(p float64) { progress = append(progress, p) },
	})
	require.NoError(t, err)
	require.InDelta(t, 6.5, result.DurationSeconds, 0.001)

	// The synthesized output encodes the duration in its size.
	require.Equal(t, int(6.5*1000), result.SizeBytes)
	uploaded, exists := module.Uploader.Object(result.ObjectKey)
	require.True(t, exists, "output must be uploaded to object storage")
	require.Len(t, uploaded, result.SizeBytes)

	require.NotEmpty(t, progress)
	require.InDelta(t, 1.0, progress[len(progress)-1], math.SmallestNonzeroFloat64)

	require.Zero(t, module.Runner.FileCount(), "temp files must be removed after success")
}

func TestTrimRejectsInvalidRangeBeforeEngineCall(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	cases := []struct {
		start float64
		end   float64
	}{
		{start: -1, end: 5},
		{start: 5, end: 5},
		{start: 8, end: 3},
	}
	for _, tc := range cases {
		_, err := module.Service.Trim(ctx, application.TrimInput{
			UserID:       "creator-1",
			Media:        sampleMedia(),
			StartSeconds: tc.start,
			EndSeconds:   tc.end,
		})
		require.ErrorIs(t, err, domainerrors.ErrInvalidTrimRange)
	}
	require.Zero(t, module.Runner.ExecCount(), "invalid ranges must not reach the engine")

	_, err := module.Service.Trim(ctx, application.TrimInput{UserID: "creator-1", StartSeconds: 0, EndSeconds: 1})
	require.ErrorIs(t, err, domainerrors.ErrInvalidClipInput)
}

func TestTrimCleansUpOnEngineFailure(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	module.Runner.FailNext(errors.New("decoder crashed"))
	_, err := module.Service.Trim(ctx, application.TrimInput{
		UserID:       "creator-1",
		Media:        sampleMedia(),
		StartSeconds: 0,
		EndSeconds:   4,
	})
	require.ErrorIs(t, err, domainerrors.ErrEngineFailure)
	require.Zero(t, module.Runner.FileCount(), "temp files must be removed after failure")
}

func TestTrimBurnsSubtitlesViaFilterArg(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	resp, err := module.Handler.TrimHandler(ctx, "creator-1", httptransport.TrimRequest{
		FileName:     "take2.mp4",
		Media:        sampleMedia(),
		StartSeconds: 0,
		EndSeconds:   3,
		SubtitlesSRT: "1\n00:00:00,000 --> 00:00:02,000\nGrüezi\n",
	})
	require.NoError(t, err)
	require.InDelta(t, 3.0, resp.DurationSeconds, 0.001)

	args := module.Runner.LastArgs()
	var filter string
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "-vf" {
			filter = args[i+1]
		}
	}
	require.Contains(t, filter, "subtitles=", "subtitle burn-in must pass a filter expression")
	require.Zero(t, module.Runner.FileCount())
}

func TestTrimsAreSerialized(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := module.Service.Trim(ctx, application.TrimInput{
				UserID:       "creator-1",
				Media:        sampleMedia(),
				StartSeconds: 1,
				EndSeconds:   2,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.False(t, module.Runner.Overlapped(), "a second trim must not start before the first completes")
	require.Equal(t, 8, module.Runner.ExecCount())
}
