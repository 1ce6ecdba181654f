package fileoutput

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// RenderContext carries what a field needs to resolve its value.
// Record is the persisted model; State is the form state used when there
// is no record yet and written to by the delete action.
type RenderContext struct {
	Record   Record
	State    State
	Language language.Tag
}

// Entry is one displayable file.
type Entry struct {
	Path         string
	Name         string
	URL          string
	IsImage      bool
	Label        string
	Description  string
	DeleteAction *DeleteAction
}

// Output is the result of resolving a Field once for a render.
type Output struct {
	field      *Field
	rc         RenderContext
	value      FileValue
	entries    []Entry
	emptyState string
}

// Resolve computes the file value, URLs, labels and actions for one render.
// URLs of multiple files are resolved concurrently. The only error returned
// is ctx's.
func (f *Field) Resolve(ctx context.Context, rc RenderContext) (*Output, error) {
	value := f.FileValue(rc)

	out := &Output{
		field:      f,
		rc:         rc,
		value:      value,
		emptyState: f.emptyState.EvalOr(rc.Record, translate(rc.Language, MsgNoFile)),
	}

	paths := value.Paths()
	urls := make([]string, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			urls[i] = f.FileURL(gctx, p)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var description Description
	hasDescription := f.description.IsSet()
	if hasDescription {
		description = f.description.Eval(rc.Record)
	}

	out.entries = make([]Entry, len(paths))
	for i, p := range paths {
		entry := Entry{
			Path:    p,
			Name:    BaseName(p),
			URL:     urls[i],
			IsImage: f.forceImage || IsImagePath(p),
			Label:   out.Label(p),
		}
		if hasDescription {
			entry.Description = description.forFile(p, value)
		}
		if value.IsMultiple() {
			entry.DeleteAction = f.DeleteAction(rc, p)
		} else {
			entry.DeleteAction = f.DeleteAction(rc, "")
		}
		out.entries[i] = entry
	}

	return out, nil
}

// FileValue resolves the raw value: the explicit path first, then the record
// attribute, then the form state when there is no record.
func (f *Field) FileValue(rc RenderContext) FileValue {
	value, ok := ParseFileValue(f.rawValue(rc))
	if !ok || value.IsEmpty() {
		return FileValue{}
	}
	return value
}

func (f *Field) rawValue(rc RenderContext) any {
	if f.path.IsSet() {
		return f.path.Eval(rc.Record)
	}

	if f.fieldName == "" {
		return nil
	}

	if rc.Record == nil {
		if rc.State == nil {
			return nil
		}
		return rc.State.Get(f.fieldName)
	}

	return rc.Record.Get(f.fieldName)
}

// HasFile reports whether at least one path was resolved.
func (o *Output) HasFile() bool {
	return !o.value.IsEmpty()
}

// IsMultiple reports whether the value is a list or mapping.
func (o *Output) IsMultiple() bool {
	return o.value.IsMultiple()
}

// IsImage reports whether a single file should be previewed as an image.
func (o *Output) IsImage() bool {
	if o.field.forceImage {
		return true
	}
	if o.value.IsEmpty() || o.value.IsMultiple() {
		return false
	}
	return IsImagePath(o.value.paths[0])
}

// Files returns the resolved paths in display order.
func (o *Output) Files() []string {
	return o.value.Paths()
}

// FilePath returns the first path, or "".
func (o *Output) FilePath() string {
	if o.value.IsEmpty() {
		return ""
	}
	return o.value.paths[0]
}

// FileURL returns the URL of the first file, or "".
func (o *Output) FileURL() string {
	if len(o.entries) == 0 {
		return ""
	}
	return o.entries[0].URL
}

func (o *Output) Entries() []Entry {
	return o.entries
}

// Entry returns the entry for path.
func (o *Output) Entry(path string) (Entry, bool) {
	for _, e := range o.entries {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

// Label returns the mapped label for path or the download label.
func (o *Output) Label(path string) string {
	if label, ok := o.value.Label(path); ok {
		return label
	}
	return o.field.downloadLabel.EvalOr(o.rc.Record, translate(o.rc.Language, MsgDownloadFile))
}

// Description returns the description for path, or "".
func (o *Output) Description(path string) string {
	if e, ok := o.Entry(path); ok {
		return e.Description
	}
	return ""
}

func (o *Output) EmptyState() string {
	return o.emptyState
}

// Field returns the field this output was resolved from.
func (o *Output) Field() *Field {
	return o.field
}
