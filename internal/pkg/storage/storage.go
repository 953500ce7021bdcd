package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ObjectStorage where uploaded media lives.
type ObjectStorage interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// ObjectKey returns <location>/<entity>/<uuid>.<ext> for an upload named filename.
func ObjectKey(location, entity, filename string) string {
	name := uuid.NewString()
	if ext := extension(filename); ext != "" {
		name += "." + ext
	}
	return path.Join(location, entity, name)
}

// ThumbKey places the thumbnail of key in a sibling thumbs folder.
func ThumbKey(key string) string {
	dir, file := path.Split(key)
	return path.Join(dir, "thumbs", file)
}

func extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// PublicURL renders a stored key as an absolute URL, "" for empty keys.
// Values that already are URLs pass through.
func PublicURL(s ObjectStorage, key *string) string {
	if key == nil || *key == "" {
		return ""
	}
	if strings.HasPrefix(*key, "http://") || strings.HasPrefix(*key, "https://") {
		return *key
	}
	return s.URL(*key)
}
