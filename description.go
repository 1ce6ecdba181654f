package fileoutput

import "strconv"

// Description is the helper text shown under files. It is either one text
// for every file, a list matched by file position, or a mapping by path.
type Description struct {
	text   string
	list   []string
	byPath map[string]string
}

// Text applies the same description to every file.
func Text(s string) Description {
	return Description{text: s}
}

// List matches descriptions to files by position.
func List(items ...string) Description {
	return Description{list: items}
}

// ByPath matches descriptions to files by path. Positional entries may be
// added with keys "0", "1", ... and are used when no path key matches.
func ByPath(m map[string]string) Description {
	return Description{byPath: m}
}

func (d Description) forFile(path string, files FileValue) string {
	if d.list == nil && d.byPath == nil {
		return d.text
	}
	if path == "" {
		return ""
	}

	if s, ok := d.byPath[path]; ok {
		return s
	}

	index := files.Index(path)
	if index < 0 {
		return ""
	}
	if index < len(d.list) {
		return d.list[index]
	}
	if s, ok := d.byPath[strconv.Itoa(index)]; ok {
		return s
	}

	return ""
}
