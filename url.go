package fileoutput

import (
	"context"
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// FileURL derives the URL a browser can load path from.
// Absolute URLs are returned unchanged. On a named disk a missing object
// yields "", a signing disk yields a temporary URL and every other case
// goes through the download route. Without a disk the default disk URL is used.
func (f *Field) FileURL(ctx context.Context, path string) string {
	if path == "" {
		return ""
	}

	if IsURL(path) {
		return path
	}

	if f.storage == nil {
		log.Warn().Str("field", f.name).Str("path", path).Msg("no storage configured for file output")
		return ""
	}

	if f.disk == "" {
		u, err := f.storage.URL(ctx, path)
		if err != nil {
			log.Warn().Err(err).Str("field", f.name).Str("path", path).Msg("failed to build file url")
			return ""
		}
		return u
	}

	disk := f.storage.Disk(f.disk)

	exists, err := disk.Exists(ctx, path)
	if err != nil {
		log.Warn().Err(err).Str("disk", f.disk).Str("path", path).Msg("failed to check if file exists")
		return ""
	}
	if !exists {
		return ""
	}

	if !disk.SupportsTemporaryURLs() {
		return DownloadURL(f.downloadRoute, f.disk, path)
	}

	u, err := disk.TemporaryURL(ctx, path, f.temporaryURLExpiry)
	if err != nil || u == "" {
		log.Warn().Err(err).Str("disk", f.disk).Str("path", path).Msg("temporary url unavailable, using download route")
		return DownloadURL(f.downloadRoute, f.disk, path)
	}

	return u
}

// DownloadURL builds the download route URL for path on disk.
func DownloadURL(route, disk, path string) string {
	q := url.Values{}
	q.Set("disk", disk)
	q.Set("path", EncodePath(path))

	sep := "?"
	if strings.Contains(route, "?") {
		sep = "&"
	}
	return route + sep + q.Encode()
}

// EncodePath encodes a storage path for the download route.
func EncodePath(path string) string {
	return base64.StdEncoding.EncodeToString([]byte(path))
}

// DecodePath reverses EncodePath. Standard and URL-safe alphabets are
// accepted, padded or not.
func DecodePath(encoded string) (string, error) {
	// query decoding turns an unescaped '+' into a space
	trimmed := strings.TrimRight(strings.ReplaceAll(encoded, " ", "+"), "=")
	for _, enc := range []*base64.Encoding{base64.RawStdEncoding, base64.RawURLEncoding} {
		if b, err := enc.DecodeString(trimmed); err == nil {
			return string(b), nil
		}
	}
	return "", ErrInvalidPath
}
