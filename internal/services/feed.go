package services

import (
	"context"

	"github.com/yatube/backend/internal/models"
	"github.com/yatube/backend/pkg/utils"
	"gorm.io/gorm"
)

// FeedService produces the three paginated listing shapes. PerPage is
// the single process-wide page size, injected from configuration and
// applied identically to every shape.
type FeedService struct {
	DB      *gorm.DB
	PerPage int
}

func NewFeedService(db *gorm.DB, perPage int) *FeedService {
	return &FeedService{DB: db, PerPage: perPage}
}

type PostPage struct {
	Items      []models.Post
	Number     int
	PerPage    int
	Total      int64
	TotalPages int
}

// All lists every post, newest first.
func (s *FeedService) All(ctx context.Context, page int) (*PostPage, error) {
	return s.paginate(ctx, func(db *gorm.DB) *gorm.DB { return db }, page)
}

// ByGroup resolves the slug first so an unknown group surfaces as
// gorm.ErrRecordNotFound rather than an empty listing.
func (s *FeedService) ByGroup(ctx context.Context, slug string, page int) (*models.Group, *PostPage, error) {
	var group models.Group
	if err := s.DB.WithContext(ctx).First(&group, "slug = ?", slug).Error; err != nil {
		return nil, nil, err
	}

	feed, err := s.paginate(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("group_id = ?", group.ID)
	}, page)
	if err != nil {
		return nil, nil, err
	}
	return &group, feed, nil
}

// ByAuthor resolves the username first, like ByGroup.
func (s *FeedService) ByAuthor(ctx context.Context, username string, page int) (*models.User, *PostPage, error) {
	var author models.User
	if err := s.DB.WithContext(ctx).First(&author, "username = ?", username).Error; err != nil {
		return nil, nil, err
	}

	feed, err := s.paginate(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", author.ID)
	}, page)
	if err != nil {
		return nil, nil, err
	}
	return &author, feed, nil
}

// paginate counts, clamps the requested page to the last valid one,
// then fetches that window ordered reverse-chronologically.
func (s *FeedService) paginate(ctx context.Context, filter func(*gorm.DB) *gorm.DB, page int) (*PostPage, error) {
	var total int64
	if err := filter(s.DB.WithContext(ctx).Model(&models.Post{})).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := utils.TotalPages(total, s.PerPage)
	number := utils.ClampPage(page, totalPages)

	var posts []models.Post
	err := filter(s.DB.WithContext(ctx).Model(&models.Post{})).
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC").
		Offset((number - 1) * s.PerPage).
		Limit(s.PerPage).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Items:      posts,
		Number:     number,
		PerPage:    s.PerPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
