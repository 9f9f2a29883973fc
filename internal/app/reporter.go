package app

import (
	"fmt"

	"go.trai.ch/vfswatch/internal/core/domain"
	"go.trai.ch/vfswatch/internal/core/ports"
	"go.trai.ch/vfswatch/internal/engine/vfs"
)

var _ ports.ChangeHandler = (*changeReporter)(nil)

// changeReporter invalidates the file system on change batches, logs them and
// re-reads the tracked paths so they stay watched.
type changeReporter struct {
	fs     *vfs.FileSystem
	logger ports.Logger
	paths  []string
}

func (c *changeReporter) HandleChanges(events []domain.ChangeEvent) {
	if len(events) == 0 {
		return
	}
	c.fs.HandleChanges(events)

	for _, event := range events {
		if event.Kind == domain.ChangeInvalidated {
			c.logger.Warn(fmt.Sprintf("Lost track of changes below %s", event.Path))
		}
	}
	if len(events) == 1 {
		c.logger.Info(fmt.Sprintf("%s %s", events[0].Path, events[0].Kind))
	} else {
		c.logger.Info(fmt.Sprintf("%d paths changed", len(events)))
	}

	if c.fs.WatchingEnabled() {
		c.refresh()
	}
}

// refresh snapshots the tracked paths that are not cached.
func (c *changeReporter) refresh() {
	for _, path := range c.paths {
		if _, err := c.fs.Read(path); err != nil {
			c.logger.Error(err)
		}
	}
}
