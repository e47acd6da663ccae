package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/yatube/backend/internal/database"
	"github.com/yatube/backend/internal/models"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@test.com",
		PasswordHash: "not-a-real-hash",
		Role:         models.UserRoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed creating user: %v", err)
	}
	return user
}

func createGroup(t *testing.T, db *gorm.DB, title, slug string) *models.Group {
	t.Helper()

	group := &models.Group{Title: title, Slug: slug}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed creating group: %v", err)
	}
	return group
}

func createPost(t *testing.T, db *gorm.DB, author *models.User, groupID *uuid.UUID, text string, pubDate time.Time) *models.Post {
	t.Helper()

	post := &models.Post{
		Text:     text,
		PubDate:  pubDate,
		AuthorID: author.ID,
		GroupID:  groupID,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed creating post: %v", err)
	}
	return post
}

func postCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.Post{}).Count(&count).Error; err != nil {
		t.Fatalf("failed counting posts: %v", err)
	}
	return count
}
