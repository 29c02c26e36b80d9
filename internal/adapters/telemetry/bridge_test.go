package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/modelcache/internal/adapters/telemetry"
	"go.trai.ch/modelcache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_LogsFinishedSpans(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	tp := telemetry.NewProvider(telemetry.NewBridge(mockLogger, 0))
	defer func() { _ = tp.Shutdown(context.Background()) }()
	tracer := telemetry.NewOTelTracerFromProvider(tp, "test")

	mockLogger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		assert.True(t, strings.HasPrefix(msg, "model.compute :app/project took"), msg)
	})
	_, span := tracer.Start(context.Background(), "model.compute")
	span.SetAttribute("model.key", ":app/project")
	span.End()

	mockLogger.EXPECT().Warn(gomock.Any())
	_, span = tracer.Start(context.Background(), "model.compute")
	span.RecordError(errors.New("boom"))
	span.End()
}

func TestBridge_SkipsFastSpans(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	tp := telemetry.NewProvider(telemetry.NewBridge(mockLogger, time.Hour))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := telemetry.NewOTelTracerFromProvider(tp, "test").Start(context.Background(), "quick")
	span.End()
}
