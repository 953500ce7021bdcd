package model

import "Newsroom/internal/pkg/audit"

func postField(name string, get func(*Post) any) audit.Field[Post] {
	return audit.Field[Post]{Name: name, Get: func(p *Post) (any, error) { return get(p), nil }}
}

// PostAuditFields compared by the admin change log, in declaration order.
var PostAuditFields = []audit.Field[Post]{
	postField("id", func(p *Post) any { return p.ID }),
	postField("title_uz", func(p *Post) any { return p.TitleUz }),
	postField("title_ru", func(p *Post) any { return p.TitleRu }),
	postField("title_en", func(p *Post) any { return p.TitleEn }),
	postField("slug", func(p *Post) any { return p.Slug }),
	postField("category", func(p *Post) any { return p.CategoryID }),
	postField("short_description_uz", func(p *Post) any { return p.ShortDescriptionUz }),
	postField("short_description_ru", func(p *Post) any { return p.ShortDescriptionRu }),
	postField("short_description_en", func(p *Post) any { return p.ShortDescriptionEn }),
	postField("content_uz", func(p *Post) any { return p.ContentUz }),
	postField("content_ru", func(p *Post) any { return p.ContentRu }),
	postField("content_en", func(p *Post) any { return p.ContentEn }),
	postField("image", func(p *Post) any { return p.Image }),
	postField("video_url", func(p *Post) any { return p.VideoURL }),
	postField("video_file", func(p *Post) any { return p.VideoFile }),
	postField("status", func(p *Post) any { return p.Status }),
	postField("published_at", func(p *Post) any { return p.PublishedAt }),
	postField("type_tag", func(p *Post) any { return p.TypeTag }),
	postField("views_count", func(p *Post) any { return p.ViewsCount }),
	postField("is_deleted", func(p *Post) any { return p.IsDeleted }),
	postField("created_at", func(p *Post) any { return p.CreatedAt }),
	postField("updated_at", func(p *Post) any { return p.UpdatedAt }),
}

func categoryField(name string, get func(*PostCategory) any) audit.Field[PostCategory] {
	return audit.Field[PostCategory]{Name: name, Get: func(c *PostCategory) (any, error) { return get(c), nil }}
}

var CategoryAuditFields = []audit.Field[PostCategory]{
	categoryField("id", func(c *PostCategory) any { return c.ID }),
	categoryField("name", func(c *PostCategory) any { return c.Name }),
	categoryField("type", func(c *PostCategory) any { return c.Type }),
	categoryField("description", func(c *PostCategory) any { return c.Description }),
	categoryField("is_deleted", func(c *PostCategory) any { return c.IsDeleted }),
	categoryField("created_at", func(c *PostCategory) any { return c.CreatedAt }),
	categoryField("updated_at", func(c *PostCategory) any { return c.UpdatedAt }),
}
