package dto

type MediaUploadDTO struct {
	Key          string  `json:"key"`
	URL          string  `json:"url"`
	ContentType  string  `json:"content_type"`
	Size         int64   `json:"size"`
	ThumbnailKey *string `json:"thumbnail_key,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}
