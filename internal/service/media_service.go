package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/pkg/storage"
	"bytes"
	"context"
	"io"
	log "log/slog"
	"net/http"
	"strings"
)

const sniffLen = 512

type MediaService interface {
	Upload(ctx context.Context, entity, filename string, reader io.ReadSeeker, size int64) (*dto.MediaUploadDTO, error)
}

type MediaServiceImpl struct {
	store      storage.ObjectStorage
	location   string
	thumbWidth int
	maxBytes   int64
}

func NewMediaService(store storage.ObjectStorage, location string, thumbWidth, maxUploadMB int) MediaService {
	return &MediaServiceImpl{
		store:      store,
		location:   location,
		thumbWidth: thumbWidth,
		maxBytes:   int64(maxUploadMB) << 20,
	}
}

// Upload stores images and videos under <location>/<entity>/, images also get a thumbnail.
func (s *MediaServiceImpl) Upload(ctx context.Context, entity, filename string, reader io.ReadSeeker, size int64) (*dto.MediaUploadDTO, error) {
	if !consts.UploadEntities[entity] {
		return nil, ErrUploadEntityInvalid
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	contentType, err := sniffContentType(reader)
	if err != nil {
		return nil, err
	}
	isImage := strings.HasPrefix(contentType, consts.MimePrefixImage)
	isVideo := strings.HasPrefix(contentType, consts.MimePrefixVideo)
	if !isImage && !isVideo {
		return nil, ErrFileNotSupported
	}

	key := storage.ObjectKey(s.location, entity, filename)
	if err = s.store.Put(ctx, key, reader, size, contentType); err != nil {
		log.ErrorContext(ctx, "Media upload failed", "key", key, "err", err)
		return nil, UnExpectedError
	}
	res := &dto.MediaUploadDTO{Key: key, URL: s.store.URL(key), ContentType: contentType, Size: size}

	if isImage && s.thumbWidth > 0 {
		s.attachThumbnail(ctx, res, reader, filename)
	}
	log.InfoContext(ctx, "Media uploaded", "key", key, "type", contentType)
	return res, nil
}

// attachThumbnail a failed thumbnail leaves the original upload in place.
func (s *MediaServiceImpl) attachThumbnail(ctx context.Context, res *dto.MediaUploadDTO, reader io.ReadSeeker, filename string) {
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		log.WarnContext(ctx, "Thumbnail skipped", "key", res.Key, "err", err)
		return
	}
	thumb, thumbType, err := storage.Thumbnail(reader, filename, s.thumbWidth)
	if err != nil {
		log.WarnContext(ctx, "Thumbnail skipped", "key", res.Key, "err", err)
		return
	}
	thumbKey := storage.ThumbKey(res.Key)
	if err = s.store.Put(ctx, thumbKey, bytes.NewReader(thumb), int64(len(thumb)), thumbType); err != nil {
		log.WarnContext(ctx, "Thumbnail upload failed", "key", thumbKey, "err", err)
		return
	}
	thumbURL := s.store.URL(thumbKey)
	res.ThumbnailKey = &thumbKey
	res.ThumbnailURL = &thumbURL
}

func sniffContentType(reader io.ReadSeeker) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(reader, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}
