package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.trai.ch/vfswatch/internal/adapters/telemetry"
	"go.trai.ch/vfswatch/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestTimingLogger(t *testing.T) {
	tests := []struct {
		name   string
		span   string
		status codes.Code
		desc   string
		expect func(l *mocks.MockLogger)
	}{
		{
			name:   "successful watch span",
			span:   "vfswatch.update_must_watch",
			expect: func(l *mocks.MockLogger) { l.EXPECT().Info("update_must_watch took 120ms") },
		},
		{
			name:   "failed watch span",
			span:   "vfswatch.changed",
			status: codes.Error,
			desc:   "already watching path",
			expect: func(l *mocks.MockLogger) { l.EXPECT().Warn("changed failed after 120ms: already watching path") },
		},
		{
			name:   "failed span without description",
			span:   "vfswatch.close",
			status: codes.Error,
			expect: func(l *mocks.MockLogger) { l.EXPECT().Warn("close failed after 120ms: operation failed") },
		},
		{
			name:   "foreign span",
			span:   "http.request",
			expect: func(*mocks.MockLogger) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				logger := mocks.NewMockLogger(ctrl)
				tt.expect(logger)

				tp := telemetry.NewProvider(logger)
				_, span := tp.Tracer("test").Start(context.Background(), tt.span)
				time.Sleep(120 * time.Millisecond)
				if tt.status == codes.Error {
					span.SetStatus(codes.Error, tt.desc)
				}
				span.End()

				require.NoError(t, tp.Shutdown(context.Background()))
			})
		})
	}
}

func TestTimingLogger_NilLogger(t *testing.T) {
	tp := telemetry.NewProvider(nil)
	_, span := tp.Tracer("test").Start(context.Background(), "vfswatch.close")
	span.RecordError(errors.New("boom"))
	span.End()

	require.NoError(t, tp.Shutdown(context.Background()))
}
