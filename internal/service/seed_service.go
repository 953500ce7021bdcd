package service

import (
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/repository"
	"context"
	"time"
)

// SeedResult one get-or-create outcome.
type SeedResult struct {
	Name    string
	Created bool
}

type categorySeed struct {
	name, kind, description string
}

var defaultCategories = []categorySeed{
	{"News", model.CategoryTypeNews, "General news articles"},
	{"Education", model.CategoryTypeNews, "Educational news and updates"},
	{"Technology", model.CategoryTypeNews, "Technology news"},
	{"Official Announcements", model.CategoryTypeAnnouncement, "Official announcements and updates"},
	{"Events", model.CategoryTypeAnnouncement, "Event announcements"},
	{"Videos", model.CategoryTypeMedia, "Video content"},
	{"Photo Gallery", model.CategoryTypeMedia, "Photo galleries and media"},
	{"Reports", model.CategoryTypeReport, "Annual and periodic reports"},
}

type samplePost struct {
	category                       string
	title, short, content, typeTag string
	videoURL                       string
}

var samplePosts = []samplePost{
	{category: "News", typeTag: "Education",
		title:   "New digital literacy training programs launched",
		short:   "Comprehensive digital literacy programs now available for all citizens",
		content: "The government has launched new digital literacy training programs aimed at improving digital skills across all age groups. The programs include basic computer skills, internet safety, and advanced digital tools training."},
	{category: "News", typeTag: "Culture",
		title:   "International cultural festival to take place in March 2026",
		short:   "Annual cultural festival brings together diverse communities",
		content: "The international cultural festival will showcase art, music, and traditions from around the world. The event is scheduled for March 2026 and will feature performances, exhibitions, and cultural workshops."},
	{category: "News", typeTag: "Technology",
		title:   "Innovative technologies showcased at research laboratory",
		short:   "Latest technological innovations presented to the public",
		content: "The national research laboratory opened its doors to showcase cutting-edge technological innovations. Visitors can explore advancements in artificial intelligence, renewable energy, and biotechnology."},
	{category: "News", typeTag: "Entrepreneurship",
		title:   "New entrepreneurship programs announced for youth",
		short:   "Supporting young entrepreneurs with new initiatives",
		content: "New entrepreneurship programs have been announced to support young people in starting their own businesses. The programs include mentorship, funding opportunities, and business training."},
	{category: "Official Announcements", typeTag: "Events",
		title:   "Grand opening ceremony of new research center",
		short:   "State-of-the-art research facility opens its doors",
		content: "The grand opening ceremony of the new research center will take place on January 7, 2026. The facility will focus on advanced scientific research and innovation."},
	{category: "Official Announcements", typeTag: "Education",
		title:   "Free online courses announced for citizens",
		short:   "Access to quality education for everyone",
		content: "Free online courses are now available covering various subjects including technology, business, languages, and personal development. Registration is open to all citizens."},
	{category: "Videos", typeTag: "Tutorial", videoURL: "https://www.youtube.com/watch?v=example",
		title:   "Effective use of digital technologies",
		short:   "Learn how to effectively use digital tools",
		content: "This video tutorial covers best practices for using digital technologies in daily life and work."},
	{category: "Videos", typeTag: "About", videoURL: "https://www.youtube.com/watch?v=example2",
		title:   "About the center's activities and mission",
		short:   "Discover our mission and ongoing activities",
		content: "An overview of our center's mission, vision, and the various programs we offer to the community."},
}

// SeedService idempotent fixtures for fresh installations. It writes the
// database only, a running server picks new categories up once its cache expires.
type SeedService interface {
	CreateCategories(ctx context.Context) ([]SeedResult, error)
	SeedSamplePosts(ctx context.Context) ([]SeedResult, error)
}

type SeedServiceImpl struct {
	postRepo     repository.PostRepo
	categoryRepo repository.CategoryRepo
	slugs        *util.SlugGenerator
	now          func() time.Time
}

func NewSeedService(postRepo repository.PostRepo, categoryRepo repository.CategoryRepo, slugs *util.SlugGenerator) SeedService {
	return &SeedServiceImpl{postRepo: postRepo, categoryRepo: categoryRepo, slugs: slugs, now: time.Now}
}

func (s *SeedServiceImpl) CreateCategories(ctx context.Context) ([]SeedResult, error) {
	results := make([]SeedResult, 0, len(defaultCategories))
	for _, c := range defaultCategories {
		category, created, err := s.category(ctx, c)
		if err != nil {
			return results, err
		}
		results = append(results, SeedResult{Name: category.Name, Created: created})
	}
	return results, nil
}

// SeedSamplePosts publishes the samples with published_at stepping back one day each.
func (s *SeedServiceImpl) SeedSamplePosts(ctx context.Context) ([]SeedResult, error) {
	categories := make(map[string]uint64)
	for _, c := range defaultCategories {
		category, _, err := s.category(ctx, c)
		if err != nil {
			return nil, err
		}
		categories[c.name] = category.ID
	}

	now := s.now()
	results := make([]SeedResult, 0, len(samplePosts))
	for i, sp := range samplePosts {
		slug, err := s.slugs.Unique(ctx, sp.title, s.postRepo.SlugExists)
		if err != nil {
			return results, err
		}
		publishedAt := now.AddDate(0, 0, -i)
		categoryID := categories[sp.category]
		post := &model.Post{
			TitleUz:            sp.title,
			Slug:               slug,
			CategoryID:         &categoryID,
			ShortDescriptionUz: sp.short,
			ContentUz:          sp.content,
			TypeTag:            sp.typeTag,
			Status:             model.PostStatusPublished,
			PublishedAt:        &publishedAt,
		}
		if sp.videoURL != "" {
			post.VideoURL = &sp.videoURL
		}

		created, err := s.postRepo.FirstOrCreateByTitle(ctx, post)
		if err != nil {
			return results, err
		}
		results = append(results, SeedResult{Name: post.TitleUz, Created: created})
	}
	return results, nil
}

func (s *SeedServiceImpl) category(ctx context.Context, c categorySeed) (*model.PostCategory, bool, error) {
	description := c.description
	category := &model.PostCategory{Name: c.name, Type: c.kind, Description: &description}
	created, err := s.categoryRepo.FirstOrCreateByName(ctx, category)
	if err != nil {
		return nil, false, err
	}
	return category, created, nil
}
