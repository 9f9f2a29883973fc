package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/vfswatch/internal/adapters/logger"
	"go.trai.ch/vfswatch/internal/core/ports"
)

// ProviderNodeID is the unique identifier for the telemetry Graft node.
const ProviderNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[*sdktrace.TracerProvider]{
		ID:        ProviderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*sdktrace.TracerProvider, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(log), nil
		},
	})
}
