package fileoutput

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type refreshingState struct {
	Values
	refreshed []string
}

func (s *refreshingState) Refresh(keys ...string) {
	s.refreshed = append(s.refreshed, keys...)
}

type deleteCall struct {
	paths []string
	disk  string
}

func recordingCallback(calls *[]deleteCall, err error) DeleteCallback {
	return func(_ context.Context, _ Record, paths []string, disk string) error {
		*calls = append(*calls, deleteCall{paths: paths, disk: disk})
		return err
	}
}

func TestField_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		state         Values
		path          string
		expectedPaths []string
		expectedValue any
	}{
		{
			name:          "should clear a single file",
			state:         Values{"avatar": "avatars/jane.png"},
			path:          "",
			expectedPaths: []string{"avatars/jane.png"},
			expectedValue: nil,
		},
		{
			name:          "should remove one entry from a list",
			state:         Values{"scans": []string{"a.pdf", "b.pdf", "c.pdf"}},
			path:          "b.pdf",
			expectedPaths: []string{"b.pdf"},
			expectedValue: []string{"a.pdf", "c.pdf"},
		},
		{
			name:          "should clear a list once the last entry is removed",
			state:         Values{"scans": []any{"a.pdf"}},
			path:          "a.pdf",
			expectedPaths: []string{"a.pdf"},
			expectedValue: nil,
		},
		{
			name:          "should remove a labeled entry by path",
			state:         Values{"contracts": map[string]string{"nda.pdf": "NDA", "msa.pdf": "MSA"}},
			path:          "nda.pdf",
			expectedPaths: []string{"nda.pdf"},
			expectedValue: map[string]string{"msa.pdf": "MSA"},
		},
		{
			name:          "should re-index an indexed map after removing an entry",
			state:         Values{"scans": map[string]string{"0": "a.pdf", "1": "b.pdf", "2": "c.pdf"}},
			path:          "b.pdf",
			expectedPaths: []string{"b.pdf"},
			expectedValue: map[string]string{"0": "a.pdf", "1": "c.pdf"},
		},
		{
			name:          "should re-index a decoded indexed map",
			state:         Values{"scans": map[string]any{"0": "a.pdf", "1": "b.pdf"}},
			path:          "a.pdf",
			expectedPaths: []string{"a.pdf"},
			expectedValue: map[string]any{"0": "b.pdf"},
		},
		{
			name:          "should remove an entry from nested values",
			state:         Values{"scans": Values{"0": "a.pdf", "1": "b.pdf"}},
			path:          "a.pdf",
			expectedPaths: []string{"a.pdf"},
			expectedValue: Values{"0": "b.pdf"},
		},
		{
			name:          "should remove a labeled entry from a decoded mapping",
			state:         Values{"contracts": map[string]any{"nda.pdf": "NDA", "msa.pdf": "MSA"}},
			path:          "msa.pdf",
			expectedPaths: []string{"msa.pdf"},
			expectedValue: map[string]any{"nda.pdf": "NDA"},
		},
		{
			name:          "should remove an entry from labeled paths",
			state:         Values{"contracts": []LabeledPath{{Path: "a.pdf", Label: "A"}, {Path: "b.pdf", Label: "B"}}},
			path:          "a.pdf",
			expectedPaths: []string{"a.pdf"},
			expectedValue: []LabeledPath{{Path: "b.pdf", Label: "B"}},
		},
		{
			name:          "should remove an entry from a file value",
			state:         Values{"scans": PathList("a.pdf", "b.pdf")},
			path:          "a.pdf",
			expectedPaths: []string{"a.pdf"},
			expectedValue: PathList("b.pdf"),
		},
		{
			name:          "should clear a file value once the last entry is removed",
			state:         Values{"scans": PathList("a.pdf")},
			path:          "a.pdf",
			expectedPaths: []string{"a.pdf"},
			expectedValue: nil,
		},
		{
			name:          "should clear an indexed map once the last entry is removed",
			state:         Values{"scans": map[string]string{"0": "a.pdf"}},
			path:          "a.pdf",
			expectedPaths: []string{"a.pdf"},
			expectedValue: nil,
		},
		{
			name:          "should delete every file when no path is given",
			state:         Values{"scans": []string{"a.pdf", "b.pdf"}},
			path:          "",
			expectedPaths: []string{"a.pdf", "b.pdf"},
			expectedValue: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var key string
			for k := range tt.state {
				key = k
			}

			var calls []deleteCall
			field := Make(key, nil).Field(key).Disk("public").OnDelete(recordingCallback(&calls, nil))
			state := &refreshingState{Values: tt.state}

			err := field.Delete(ctx, RenderContext{State: state}, tt.path)
			require.NoError(t, err)

			require.Len(t, calls, 1, "expected callback to run exactly once")
			assert.Equal(t, tt.expectedPaths, calls[0].paths)
			assert.Equal(t, "public", calls[0].disk)
			assert.Equal(t, tt.expectedValue, state.Get(key))
			assert.Equal(t, []string{key}, state.refreshed, "expected state refresh")
		})
	}
}

func TestField_Delete_Unavailable(t *testing.T) {
	ctx := context.Background()

	t.Run("should fail without a callback", func(t *testing.T) {
		err := Make("f", nil).Field("f").Delete(ctx, RenderContext{State: Values{"f": "a.pdf"}}, "")
		assert.ErrorIs(t, err, ErrDeleteUnavailable)
	})

	t.Run("should fail when the button is hidden", func(t *testing.T) {
		var calls []deleteCall
		state := Values{"f": "a.pdf"}

		err := Make("f", nil).Field("f").OnDelete(recordingCallback(&calls, nil)).HideDeleteButton(true).
			Delete(ctx, RenderContext{State: state}, "")

		assert.ErrorIs(t, err, ErrDeleteUnavailable)
		assert.Empty(t, calls)
		assert.Equal(t, "a.pdf", state.Get("f"))
	})
}

func TestField_Delete_CallbackError(t *testing.T) {
	var calls []deleteCall
	callbackErr := errors.New("permission denied")
	state := Values{"f": []string{"a.pdf", "b.pdf"}}

	err := Make("f", nil).Field("f").OnDelete(recordingCallback(&calls, callbackErr)).
		Delete(context.Background(), RenderContext{State: state}, "a.pdf")

	assert.ErrorIs(t, err, callbackErr)
	assert.Len(t, calls, 1)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, state.Get("f"), "expected state to be left untouched")
}

func TestField_Delete_WithoutState(t *testing.T) {
	var calls []deleteCall

	err := Make("f", nil).Path("a.pdf").OnDelete(recordingCallback(&calls, nil)).
		Delete(context.Background(), RenderContext{}, "")

	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"a.pdf"}, calls[0].paths)
}

func TestField_DeleteAction(t *testing.T) {
	noop := func(context.Context, Record, []string, string) error { return nil }

	t.Run("should be absent without a callback", func(t *testing.T) {
		assert.Nil(t, Make("f", nil).DeleteAction(RenderContext{}, ""))
	})

	t.Run("should use translated defaults", func(t *testing.T) {
		action := Make("f", nil).OnDelete(noop).DeleteAction(RenderContext{Language: language.German}, "a.pdf")
		require.NotNil(t, action)

		assert.Equal(t, DeleteActionName, action.Name)
		assert.Equal(t, "Löschen", action.Label)
		assert.Equal(t, "Datei löschen?", action.ModalHeading)
		assert.Equal(t, "", action.ModalDescription)
		assert.Equal(t, "heroicon-o-trash", action.Icon)
		assert.Equal(t, "danger", action.Color)
		assert.True(t, action.RequiresConfirmation)
		assert.Equal(t, "a.pdf", action.FilePath)
	})

	t.Run("should use configured strings", func(t *testing.T) {
		action := Make("f", nil).
			OnDelete(noop).
			DeleteLabel("Remove").
			DeleteConfirmationTitle("Remove contract?").
			DeleteConfirmationDescriptionFunc(func(r Record) string { return "Owner: " + r.Get("owner").(string) }).
			DeleteAction(RenderContext{Record: Values{"owner": "Jane"}}, "")
		require.NotNil(t, action)

		assert.Equal(t, "Remove", action.Label)
		assert.Equal(t, "Remove contract?", action.ModalHeading)
		assert.Equal(t, "Owner: Jane", action.ModalDescription)
	})

	t.Run("should attach per file actions in multiple mode", func(t *testing.T) {
		out, err := Make("f", nil).Path([]string{"https://a.example/1.pdf", "https://a.example/2.pdf"}).OnDelete(noop).
			Resolve(context.Background(), RenderContext{})
		require.NoError(t, err)

		for _, e := range out.Entries() {
			require.NotNil(t, e.DeleteAction)
			assert.Equal(t, e.Path, e.DeleteAction.FilePath)
		}
	})
}

func TestDeleteFromDisk(t *testing.T) {
	ctx := context.Background()

	t.Run("should delete from the named disk skipping urls", func(t *testing.T) {
		named := new(MockManager)
		named.On("Delete", mock.Anything, "a.pdf").Return(nil).Once()
		named.On("Delete", mock.Anything, "b.pdf").Return(nil).Once()

		storage := new(MockManager)
		storage.On("Disk", "s3").Return(named).Once()

		err := DeleteFromDisk(storage)(ctx, nil, []string{"a.pdf", "https://cdn.example.com/x.pdf", "", "b.pdf"}, "s3")

		require.NoError(t, err)
		storage.AssertExpectations(t)
		named.AssertExpectations(t)
	})

	t.Run("should use the default disk without a name", func(t *testing.T) {
		storage := new(MockManager)
		storage.On("Delete", mock.Anything, "a.pdf").Return(ErrInternal).Once()

		err := DeleteFromDisk(storage)(ctx, nil, []string{"a.pdf"}, "")

		assert.ErrorIs(t, err, ErrInternal)
		storage.AssertExpectations(t)
		storage.AssertNotCalled(t, "Disk", mock.Anything)
	})

	t.Run("should treat files that are already gone as deleted", func(t *testing.T) {
		storage := new(MockManager)
		storage.On("Delete", mock.Anything, "gone.pdf").Return(fmt.Errorf("%w: gone.pdf", ErrNotFound)).Once()
		storage.On("Delete", mock.Anything, "kept.pdf").Return(nil).Once()

		err := DeleteFromDisk(storage)(ctx, nil, []string{"gone.pdf", "kept.pdf"}, "")

		require.NoError(t, err)
		storage.AssertExpectations(t)
	})

	t.Run("should do nothing when only urls are given", func(t *testing.T) {
		storage := new(MockManager)

		err := DeleteFromDisk(storage)(ctx, nil, []string{"https://cdn.example.com/x.pdf"}, "")

		require.NoError(t, err)
		storage.AssertExpectations(t)
	})
}

func TestField_Delete_MissingFileOnDisk(t *testing.T) {
	disk := new(MockDisk)
	disk.On("Delete", mock.Anything, "gone.pdf").Return(fmt.Errorf("%w: gone.pdf", ErrNotFound)).Once()

	storage, err := NewManager("local", map[string]Disk{"local": disk})
	require.NoError(t, err)

	state := Values{"f": "gone.pdf"}
	err = Make("f", storage).Field("f").Disk("local").OnDelete(DeleteFromDisk(storage)).
		Delete(context.Background(), RenderContext{State: state}, "")

	require.NoError(t, err)
	assert.Nil(t, state.Get("f"), "expected state to be cleared")
	disk.AssertExpectations(t)
}
