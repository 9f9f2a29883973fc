package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/vfswatch/internal/adapters/logger"
)

func TestPrettyHandler(t *testing.T) {
	tests := []struct {
		name string
		log  func(*slog.Logger)
		want string
	}{
		{
			name: "info",
			log:  func(l *slog.Logger) { l.Info("watching started") },
			want: "watching started\n",
		},
		{
			name: "warn",
			log:  func(l *slog.Logger) { l.Warn("overflow") },
			want: "! overflow\n",
		},
		{
			name: "error",
			log:  func(l *slog.Logger) { l.Error("watch failed") },
			want: "✗ watch failed\n",
		},
		{
			name: "debug is filtered",
			log:  func(l *slog.Logger) { l.Debug("noise") },
			want: "",
		},
		{
			name: "attributes",
			log:  func(l *slog.Logger) { l.Info("stopped", "roots", 2, "platform", "recursive") },
			want: "stopped roots=2 platform=recursive\n",
		},
		{
			name: "handler attributes and group",
			log: func(l *slog.Logger) {
				l.With("session", "a").WithGroup("watch").Info("started", "root", "/ws")
			},
			want: "started session=a watch.root=/ws\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			tt.log(slog.New(logger.NewPrettyHandler(buf, nil)))

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_Level(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	l.Info("ignored")
	l.Warn("kept")

	assert.Equal(t, "! kept\n", buf.String())
}
