package fileoutput

import (
	"context"
	"time"
)

const (
	// DefaultDownloadRoute is where the download handler is mounted.
	DefaultDownloadRoute = "/filament-fileoutput/download"

	// DefaultTemporaryURLExpiry is how long signed URLs stay valid.
	DefaultTemporaryURLExpiry = 5 * time.Minute
)

// DeleteCallback is invoked once by the delete action with the record, the
// paths being deleted and the disk alias the field is bound to.
type DeleteCallback func(ctx context.Context, record Record, paths []string, disk string) error

// Field displays a previously uploaded file stored on a disk.
// Configure it with the fluent setters before resolving; a configured
// Field is safe to resolve concurrently.
type Field struct {
	name    string
	storage Manager

	disk      string
	fieldName string
	path      Value[any]

	deleteCallback   DeleteCallback
	showDeleteButton bool
	forceImage       bool

	description                   Value[Description]
	deleteConfirmationTitle       Value[string]
	deleteConfirmationDescription Value[string]
	deleteLabel                   Value[string]
	downloadLabel                 Value[string]
	emptyState                    Value[string]

	temporaryURLExpiry time.Duration
	downloadRoute      string
}

// Make creates a field named name backed by storage.
func Make(name string, storage Manager) *Field {
	return &Field{
		name:               name,
		storage:            storage,
		showDeleteButton:   true,
		temporaryURLExpiry: DefaultTemporaryURLExpiry,
		downloadRoute:      DefaultDownloadRoute,
	}
}

// Disk selects the disk alias files are stored on. Empty means the default disk.
func (f *Field) Disk(disk string) *Field {
	f.disk = disk
	return f
}

// Field names the record attribute that holds the path. Dot notation is allowed.
func (f *Field) Field(fieldName string) *Field {
	f.fieldName = fieldName
	return f
}

// Path sets an explicit value that takes precedence over the record attribute.
// It accepts anything ParseFileValue does.
func (f *Field) Path(value any) *Field {
	f.path = Static(value)
	return f
}

// PathFunc computes the value from the record at render time.
func (f *Field) PathFunc(fn func(Record) any) *Field {
	f.path = Resolve(fn)
	return f
}

// OnDelete sets the callback run by the delete action. Without one no delete button is shown.
func (f *Field) OnDelete(callback DeleteCallback) *Field {
	f.deleteCallback = callback
	return f
}

// ShowDeleteButton toggles the delete button. It is shown by default.
func (f *Field) ShowDeleteButton(condition bool) *Field {
	f.showDeleteButton = condition
	return f
}

// HideDeleteButton hides the delete button when condition is true.
func (f *Field) HideDeleteButton(condition bool) *Field {
	f.showDeleteButton = !condition
	return f
}

// Image forces the image preview regardless of the file extension.
func (f *Field) Image(condition bool) *Field {
	f.forceImage = condition
	return f
}

// Description sets the helper text shown under the files.
func (f *Field) Description(d Description) *Field {
	f.description = Static(d)
	return f
}

// DescriptionFunc computes the helper text from the record.
func (f *Field) DescriptionFunc(fn func(Record) Description) *Field {
	f.description = Resolve(fn)
	return f
}

// DeleteConfirmationTitle sets the heading of the delete confirmation.
func (f *Field) DeleteConfirmationTitle(title string) *Field {
	f.deleteConfirmationTitle = Static(title)
	return f
}

// DeleteConfirmationTitleFunc computes the confirmation heading from the record.
func (f *Field) DeleteConfirmationTitleFunc(fn func(Record) string) *Field {
	f.deleteConfirmationTitle = Resolve(fn)
	return f
}

// DeleteConfirmationDescription sets the body of the delete confirmation.
func (f *Field) DeleteConfirmationDescription(description string) *Field {
	f.deleteConfirmationDescription = Static(description)
	return f
}

// DeleteConfirmationDescriptionFunc computes the confirmation body from the record.
func (f *Field) DeleteConfirmationDescriptionFunc(fn func(Record) string) *Field {
	f.deleteConfirmationDescription = Resolve(fn)
	return f
}

// DeleteLabel sets the delete button text.
func (f *Field) DeleteLabel(label string) *Field {
	f.deleteLabel = Static(label)
	return f
}

// DeleteLabelFunc computes the delete button text from the record.
func (f *Field) DeleteLabelFunc(fn func(Record) string) *Field {
	f.deleteLabel = Resolve(fn)
	return f
}

// DownloadLabel replaces the default link text for files without a mapped label.
func (f *Field) DownloadLabel(label string) *Field {
	f.downloadLabel = Static(label)
	return f
}

// DownloadLabelFunc computes the link text from the record.
func (f *Field) DownloadLabelFunc(fn func(Record) string) *Field {
	f.downloadLabel = Resolve(fn)
	return f
}

// EmptyState sets the message shown when there is no file.
func (f *Field) EmptyState(message string) *Field {
	f.emptyState = Static(message)
	return f
}

// EmptyStateFunc computes the empty message from the record.
func (f *Field) EmptyStateFunc(fn func(Record) string) *Field {
	f.emptyState = Resolve(fn)
	return f
}

// TemporaryURLExpiry sets the lifetime of signed URLs. Non-positive values are ignored.
func (f *Field) TemporaryURLExpiry(d time.Duration) *Field {
	if d > 0 {
		f.temporaryURLExpiry = d
	}
	return f
}

// DownloadRoute sets the URL the download handler is reachable at.
func (f *Field) DownloadRoute(route string) *Field {
	if route != "" {
		f.downloadRoute = route
	}
	return f
}

// Name returns the name the field was made with.
func (f *Field) Name() string {
	return f.name
}

// FieldName returns the record attribute holding the path.
func (f *Field) FieldName() string {
	return f.fieldName
}

// DiskName returns the configured disk alias, empty for the default disk.
func (f *Field) DiskName() string {
	return f.disk
}

// DeleteCallback returns the configured delete callback, or nil.
func (f *Field) DeleteCallback() DeleteCallback {
	return f.deleteCallback
}
