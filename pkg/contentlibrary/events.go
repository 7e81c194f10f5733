package contentlibrary

import (
	"context"
	"log/slog"
)

// NoopEventSink is a no-operation implementation of EventSink
// Useful for production when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// FolderCreated does nothing and returns nil
func (n *NoopEventSink) FolderCreated(ctx context.Context, folder *Folder) error {
	return nil
}

// ContentUploaded does nothing and returns nil
func (n *NoopEventSink) ContentUploaded(ctx context.Context, item *ContentItem) error {
	return nil
}

// ItemRenamed does nothing and returns nil
func (n *NoopEventSink) ItemRenamed(ctx context.Context, id string, kind ItemKind, newName string) error {
	return nil
}

// ItemMoved does nothing and returns nil
func (n *NoopEventSink) ItemMoved(ctx context.Context, id string, kind ItemKind, newParentID string) error {
	return nil
}

// ItemDeleted does nothing and returns nil
func (n *NoopEventSink) ItemDeleted(ctx context.Context, id string, kind ItemKind) error {
	return nil
}

// LogEventSink is an event sink that logs library events but takes no other
// action. Useful for development and debugging.
type LogEventSink struct {
	logger *slog.Logger
}

// NewLogEventSink creates a new logging event sink
func NewLogEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEventSink{logger: logger}
}

// FolderCreated logs the folder creation event
func (l *LogEventSink) FolderCreated(ctx context.Context, folder *Folder) error {
	l.logger.Info("folder created", "folder_id", folder.ID, "name", folder.Name, "parent_id", folder.ParentID)
	return nil
}

// ContentUploaded logs the content registration event
func (l *LogEventSink) ContentUploaded(ctx context.Context, item *ContentItem) error {
	l.logger.Info("content uploaded", "item_id", item.ID, "title", item.Title, "type", item.Type, "folder_id", item.FolderID)
	return nil
}

// ItemRenamed logs the rename event
func (l *LogEventSink) ItemRenamed(ctx context.Context, id string, kind ItemKind, newName string) error {
	l.logger.Info("item renamed", "item_id", id, "kind", kind, "new_name", newName)
	return nil
}

// ItemMoved logs the move event
func (l *LogEventSink) ItemMoved(ctx context.Context, id string, kind ItemKind, newParentID string) error {
	l.logger.Info("item moved", "item_id", id, "kind", kind, "new_parent_id", newParentID)
	return nil
}

// ItemDeleted logs the delete event
func (l *LogEventSink) ItemDeleted(ctx context.Context, id string, kind ItemKind) error {
	l.logger.Info("item deleted", "item_id", id, "kind", kind)
	return nil
}
