package model

import (
	"testing"

	"Newsroom/internal/pkg/audit"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestPostValidateVideoSources(t *testing.T) {
	tests := []struct {
		name      string
		videoURL  *string
		videoFile *string
		wantErr   error
	}{
		{name: "neither", wantErr: nil},
		{name: "url only", videoURL: strPtr("https://youtu.be/x"), wantErr: nil},
		{name: "file only", videoFile: strPtr("media/posts/videos/a.mp4"), wantErr: nil},
		{name: "both", videoURL: strPtr("https://youtu.be/x"), videoFile: strPtr("media/a.mp4"), wantErr: ErrVideoSourceConflict},
		{name: "blank strings count as unset", videoURL: strPtr(""), videoFile: strPtr("media/a.mp4"), wantErr: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{TitleUz: "t", Status: PostStatusDraft, VideoURL: tt.videoURL, VideoFile: tt.videoFile}
			assert.ErrorIs(t, p.Validate(), tt.wantErr)
			if tt.wantErr == nil {
				assert.NoError(t, p.Validate())
			}
		})
	}
}

func TestPostValidateStatus(t *testing.T) {
	assert.ErrorIs(t, (&Post{Status: "archived"}).Validate(), ErrInvalidStatus)
	assert.NoError(t, (&Post{Status: PostStatusPublished}).Validate())
}

func TestPostAuditFieldsDiff(t *testing.T) {
	before := &Post{ID: 1, TitleUz: "Eski", Status: PostStatusDraft, ViewsCount: 3}
	after := *before
	after.ID = 99
	after.TitleUz = "Yangi"
	after.Status = PostStatusPublished

	changes := audit.Diff(before, &after, PostAuditFields)
	assert.Len(t, changes, 2)
	assert.True(t, changes.Has("title_uz"))
	assert.True(t, changes.Has("status"))
	assert.False(t, changes.Has("id"))
}

func TestCategoryValidate(t *testing.T) {
	assert.NoError(t, (&PostCategory{Type: CategoryTypeMedia}).Validate())
	assert.ErrorIs(t, (&PostCategory{Type: "blog"}).Validate(), ErrInvalidCategoryType)
}
