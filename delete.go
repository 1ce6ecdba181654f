package fileoutput

import (
	"context"
	"errors"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DeleteActionName identifies the delete action in rendered markup.
const DeleteActionName = "deleteFile"

// DeleteAction describes the confirmation-guarded delete button of a file.
type DeleteAction struct {
	Name                 string
	Label                string
	Icon                 string
	Color                string
	RequiresConfirmation bool
	ModalHeading         string
	ModalDescription     string
	// FilePath is the single file to delete; empty means the whole value.
	FilePath string
}

// DeleteAction returns the action for path, or nil when no delete callback
// is configured or the button is hidden.
func (f *Field) DeleteAction(rc RenderContext, path string) *DeleteAction {
	if f.deleteCallback == nil || !f.showDeleteButton {
		return nil
	}

	return &DeleteAction{
		Name:                 DeleteActionName,
		Label:                f.deleteLabel.EvalOr(rc.Record, translate(rc.Language, MsgDelete)),
		Icon:                 "heroicon-o-trash",
		Color:                "danger",
		RequiresConfirmation: true,
		ModalHeading:         f.deleteConfirmationTitle.EvalOr(rc.Record, translate(rc.Language, MsgDeleteFileHeading)),
		ModalDescription:     f.deleteConfirmationDescription.EvalOr(rc.Record, ""),
		FilePath:             path,
	}
}

// Delete runs the delete action. The callback is invoked exactly once with
// path, or with every resolved path when path is empty. When the callback
// succeeds and the field is bound to an attribute, the state value is cleared:
// a list loses the deleted entry (nil once empty), anything else becomes nil.
func (f *Field) Delete(ctx context.Context, rc RenderContext, path string) error {
	if f.deleteCallback == nil || !f.showDeleteButton {
		return ErrDeleteUnavailable
	}

	targets := []string{path}
	if path == "" {
		targets = f.FileValue(rc).Paths()
	}

	if err := f.deleteCallback(ctx, rc.Record, targets, f.disk); err != nil {
		log.Error().Err(err).Str("field", f.name).Strs("paths", targets).Msg("delete callback failed")
		return err
	}

	if f.fieldName == "" || rc.State == nil {
		return nil
	}

	rc.State.Set(f.fieldName, remainingValue(rc.State.Get(f.fieldName), path))

	if r, ok := rc.State.(Refresher); ok {
		r.Refresh(f.fieldName)
	}

	return nil
}

// remainingValue returns current without path in the same shape, or nil when
// nothing is left. Shapes ParseFileValue cannot read are cleared.
func remainingValue(current any, path string) any {
	if path == "" {
		return nil
	}

	switch v := current.(type) {
	case []string:
		left := slices.DeleteFunc(slices.Clone(v), func(p string) bool { return p == path })
		return nilIfEmpty(left, len(left))
	case []any:
		left := slices.DeleteFunc(slices.Clone(v), func(p any) bool { return p == path })
		return nilIfEmpty(left, len(left))
	case []LabeledPath:
		left := slices.DeleteFunc(slices.Clone(v), func(e LabeledPath) bool { return e.Path == path })
		return nilIfEmpty(left, len(left))
	case FileValue:
		left := v.without(path)
		return nilIfEmpty(left, len(left.paths))
	}

	fv, ok := ParseFileValue(current)
	if !ok {
		return nil
	}
	entries := mapEntries(fv.without(path))

	switch current.(type) {
	case map[string]string:
		return nilIfEmpty(entries, len(entries))
	case map[string]any:
		left := make(map[string]any, len(entries))
		for k, s := range entries {
			left[k] = s
		}
		return nilIfEmpty(left, len(left))
	case Values:
		left := make(Values, len(entries))
		for k, s := range entries {
			left[k] = s
		}
		return nilIfEmpty(left, len(left))
	}

	return nil
}

// mapEntries lays fv out the way parseMap reads it back: labels keyed by
// path, plain lists keyed by their index.
func mapEntries(fv FileValue) map[string]string {
	out := make(map[string]string, len(fv.paths))
	for i, p := range fv.paths {
		if fv.HasLabels() {
			out[p] = fv.labels[p]
			continue
		}
		out[strconv.Itoa(i)] = p
	}
	return out
}

func nilIfEmpty(v any, n int) any {
	if n == 0 {
		return nil
	}
	return v
}

// DeleteFromDisk returns a callback that removes the target files from the
// field's disk, or the default disk when the field has none. Absolute URLs
// are skipped and files that are already gone count as deleted.
func DeleteFromDisk(storage Manager) DeleteCallback {
	return func(ctx context.Context, _ Record, paths []string, disk string) error {
		target := storage
		if disk != "" {
			target = storage.Disk(disk)
		}

		g, ctx := errgroup.WithContext(ctx)
		for _, p := range paths {
			if p == "" || IsURL(p) {
				continue
			}

			g.Go(func() error {
				if err := target.Delete(ctx, p); err != nil && !errors.Is(err, ErrNotFound) {
					return err
				}
				return nil
			})
		}

		return g.Wait()
	}
}
