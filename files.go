package fileoutput

import (
	"net/url"
	"path"
	"slices"
	"sort"
	"strconv"
	"strings"
)

var imageExtensions = []string{"jpg", "jpeg", "png", "gif", "bmp", "svg", "webp", "ico"}

// FileValue is a resolved file reference: a single path, a list of paths
// or an ordered path -> label mapping.
type FileValue struct {
	paths    []string
	labels   map[string]string
	multiple bool
}

// SinglePath builds a FileValue holding one path.
func SinglePath(p string) FileValue {
	return FileValue{paths: []string{p}}
}

// PathList builds a multi-file FileValue. Duplicate paths are dropped.
func PathList(paths ...string) FileValue {
	return FileValue{paths: uniquePaths(paths), multiple: true}
}

// LabeledPath is one entry of a path -> label mapping.
type LabeledPath struct {
	Path  string
	Label string
}

// LabeledPaths builds a multi-file FileValue with a label per path.
// Order is preserved; a repeated path keeps its first label.
func LabeledPaths(entries ...LabeledPath) FileValue {
	fv := FileValue{labels: make(map[string]string, len(entries)), multiple: true}
	for _, e := range entries {
		if _, seen := fv.labels[e.Path]; seen {
			continue
		}
		fv.labels[e.Path] = e.Label
		fv.paths = append(fv.paths, e.Path)
	}
	return fv
}

// ParseFileValue converts a raw field value into a FileValue.
// It accepts strings, string slices, []any of strings, LabeledPath slices and
// string-keyed maps. Maps whose keys are exactly "0".."n-1" are read as
// indexed lists, any other map as a path -> label mapping sorted by path.
// The second result is false when raw holds no usable file reference.
func ParseFileValue(raw any) (FileValue, bool) {
	switch v := raw.(type) {
	case nil:
		return FileValue{}, false
	case FileValue:
		return v, v.multiple || len(v.paths) > 0
	case string:
		if v == "" {
			return FileValue{}, false
		}
		return SinglePath(v), true
	case []string:
		return PathList(v...), true
	case []any:
		paths := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return FileValue{}, false
			}
			paths = append(paths, s)
		}
		return PathList(paths...), true
	case []LabeledPath:
		return LabeledPaths(v...), true
	case map[string]string:
		generic := make(map[string]any, len(v))
		for k, label := range v {
			generic[k] = label
		}
		return parseMap(generic)
	case map[string]any:
		return parseMap(v)
	case Values:
		return parseMap(v)
	}

	return FileValue{}, false
}

func parseMap(m map[string]any) (FileValue, bool) {
	if !isAssociative(m) {
		paths := make([]string, len(m))
		for k, item := range m {
			i, _ := strconv.Atoi(k)
			s, ok := item.(string)
			if !ok {
				return FileValue{}, false
			}
			paths[i] = s
		}
		return PathList(paths...), true
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]LabeledPath, 0, len(keys))
	for _, k := range keys {
		label, ok := m[k].(string)
		if !ok {
			return FileValue{}, false
		}
		entries = append(entries, LabeledPath{Path: k, Label: label})
	}

	return LabeledPaths(entries...), true
}

// isAssociative reports whether the keys of m are anything other than
// the sequence "0".."n-1". Empty maps are not associative.
func isAssociative(m map[string]any) bool {
	if len(m) == 0 {
		return false
	}
	for i := range len(m) {
		if _, ok := m[strconv.Itoa(i)]; !ok {
			return true
		}
	}
	return false
}

func uniquePaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if slices.Contains(out, p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Paths returns the file paths in order.
func (fv FileValue) Paths() []string {
	return slices.Clone(fv.paths)
}

// IsMultiple reports whether the value came from a list or mapping,
// even when it holds a single entry.
func (fv FileValue) IsMultiple() bool {
	return fv.multiple
}

// IsEmpty reports whether there are no paths.
func (fv FileValue) IsEmpty() bool {
	return len(fv.paths) == 0
}

// Label returns the label attached to p by a mapping.
func (fv FileValue) Label(p string) (string, bool) {
	label, ok := fv.labels[p]
	return label, ok
}

// HasLabels reports whether the value is a path -> label mapping.
func (fv FileValue) HasLabels() bool {
	return fv.labels != nil
}

// Index returns the position of p, or -1.
func (fv FileValue) Index(p string) int {
	return slices.Index(fv.paths, p)
}

// without returns a copy of fv lacking p, keeping order, labels and mode.
func (fv FileValue) without(p string) FileValue {
	out := FileValue{multiple: fv.multiple}
	if fv.labels != nil {
		out.labels = make(map[string]string, len(fv.labels))
	}
	for _, q := range fv.paths {
		if q == p {
			continue
		}
		out.paths = append(out.paths, q)
		if fv.labels != nil {
			out.labels[q] = fv.labels[q]
		}
	}
	return out
}

// IsImagePath reports whether p has a recognised image extension.
func IsImagePath(p string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(BaseName(p))), ".")
	return slices.Contains(imageExtensions, ext)
}

// IsURL reports whether s is an absolute URL with a scheme and a host.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// BaseName returns the last element of a path or URL path.
func BaseName(p string) string {
	if IsURL(p) {
		if u, err := url.Parse(p); err == nil {
			p = u.Path
		}
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}
