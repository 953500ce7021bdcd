package model

import "errors"

var (
	ErrVideoSourceConflict = errors.New("use either video URL or video file, not both")
	ErrInvalidStatus       = errors.New("status must be draft or published")
	ErrInvalidCategoryType = errors.New("category type must be one of news, announcement, report, media")
)
