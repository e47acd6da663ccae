package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yatube/backend/internal/models"
	"gorm.io/gorm"
)

func TestValidateText(t *testing.T) {
	if err := ValidateText(""); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent for empty text, got %v", err)
	}
	if err := ValidateText("hello"); err != nil {
		t.Fatalf("expected non-empty text to pass, got %v", err)
	}
	// whitespace is content as far as the validator is concerned
	if err := ValidateText("   "); err != nil {
		t.Fatalf("expected whitespace-only text to pass, got %v", err)
	}
}

func TestAuthoringCreate(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthoringService(db)
	ctx := context.Background()
	author := createUser(t, db, "writer")
	group := createGroup(t, db, "Notes", "notes")

	t.Run("persists a post with the submitted text", func(t *testing.T) {
		before := postCount(t, db)
		post, err := svc.Create(ctx, CreateInput{
			AuthorID: author.ID,
			Text:     "first entry",
			GroupID:  &group.ID,
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if got := postCount(t, db); got != before+1 {
			t.Fatalf("expected post count %d, got %d", before+1, got)
		}

		var stored models.Post
		if err := db.First(&stored, "id = ?", post.ID).Error; err != nil {
			t.Fatalf("failed loading post: %v", err)
		}
		if stored.Text != "first entry" {
			t.Fatalf("expected text stored verbatim, got %q", stored.Text)
		}
		if stored.AuthorID != author.ID {
			t.Fatal("expected the post attributed to its author")
		}
		if stored.GroupID == nil || *stored.GroupID != group.ID {
			t.Fatal("expected the post attached to its group")
		}
		if stored.PubDate.IsZero() {
			t.Fatal("expected a publication timestamp")
		}
	})

	t.Run("empty text writes nothing", func(t *testing.T) {
		before := postCount(t, db)
		_, err := svc.Create(ctx, CreateInput{AuthorID: author.ID, Text: ""})
		if !errors.Is(err, ErrEmptyContent) {
			t.Fatalf("expected ErrEmptyContent, got %v", err)
		}
		if got := postCount(t, db); got != before {
			t.Fatalf("expected post count unchanged at %d, got %d", before, got)
		}
	})

	t.Run("unknown group is rejected", func(t *testing.T) {
		missing := uuid.New()
		_, err := svc.Create(ctx, CreateInput{
			AuthorID: author.ID,
			Text:     "orphan",
			GroupID:  &missing,
		})
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("expected ErrRecordNotFound for unknown group, got %v", err)
		}
	})
}

func TestAuthoringEdit(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthoringService(db)
	ctx := context.Background()
	author := createUser(t, db, "owner")
	stranger := createUser(t, db, "stranger")
	group := createGroup(t, db, "Original", "original")
	other := createGroup(t, db, "Target", "target")

	pubDate := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	post := createPost(t, db, author, &group.ID, "original text", pubDate)

	t.Run("non-author gets a redirect and the post is untouched", func(t *testing.T) {
		result, err := svc.Edit(ctx, EditInput{
			PostID:  post.ID,
			ActorID: stranger.ID,
			Text:    "hijacked",
		})
		if err != nil {
			t.Fatalf("edit failed: %v", err)
		}
		if result.Post != nil {
			t.Fatal("expected no post branch for a refused edit")
		}
		if result.RedirectTo != PostDetailPath(post.ID) {
			t.Fatalf("expected redirect to the detail view, got %q", result.RedirectTo)
		}

		var stored models.Post
		if err := db.First(&stored, "id = ?", post.ID).Error; err != nil {
			t.Fatalf("failed loading post: %v", err)
		}
		if stored.Text != "original text" {
			t.Fatalf("expected text untouched, got %q", stored.Text)
		}
	})

	t.Run("author edit replaces text and group, keeps author and pub date", func(t *testing.T) {
		result, err := svc.Edit(ctx, EditInput{
			PostID:  post.ID,
			ActorID: author.ID,
			Text:    "revised text",
			GroupID: &other.ID,
		})
		if err != nil {
			t.Fatalf("edit failed: %v", err)
		}
		if result.Post == nil {
			t.Fatal("expected the post branch on success")
		}
		if result.RedirectTo != PostDetailPath(post.ID) {
			t.Fatalf("expected redirect to the detail view, got %q", result.RedirectTo)
		}

		var stored models.Post
		if err := db.First(&stored, "id = ?", post.ID).Error; err != nil {
			t.Fatalf("failed loading post: %v", err)
		}
		if stored.Text != "revised text" {
			t.Fatalf("expected revised text, got %q", stored.Text)
		}
		if stored.GroupID == nil || *stored.GroupID != other.ID {
			t.Fatal("expected the post moved to the new group")
		}
		if stored.AuthorID != author.ID {
			t.Fatal("expected authorship unchanged")
		}
		if !stored.PubDate.Equal(pubDate) {
			t.Fatalf("expected pub date unchanged, got %v", stored.PubDate)
		}
	})

	t.Run("omitted group detaches the post", func(t *testing.T) {
		_, err := svc.Edit(ctx, EditInput{
			PostID:  post.ID,
			ActorID: author.ID,
			Text:    "ungrouped now",
		})
		if err != nil {
			t.Fatalf("edit failed: %v", err)
		}

		var stored models.Post
		if err := db.First(&stored, "id = ?", post.ID).Error; err != nil {
			t.Fatalf("failed loading post: %v", err)
		}
		if stored.GroupID != nil {
			t.Fatalf("expected group cleared, got %v", stored.GroupID)
		}
	})

	t.Run("empty text re-renders the form with the stored group", func(t *testing.T) {
		// attach a group again so the re-rendered form has one to echo
		if err := db.Model(&models.Post{}).Where("id = ?", post.ID).Update("group_id", group.ID).Error; err != nil {
			t.Fatalf("failed re-attaching group: %v", err)
		}

		result, err := svc.Edit(ctx, EditInput{
			PostID:  post.ID,
			ActorID: author.ID,
			Text:    "",
		})
		if err != nil {
			t.Fatalf("edit failed: %v", err)
		}
		if result.Form == nil {
			t.Fatal("expected the form branch on validation failure")
		}
		if !result.Form.IsEdit || result.Form.PostID != post.ID {
			t.Fatalf("expected an edit form for the post, got %+v", result.Form)
		}
		if result.Form.GroupID == nil || *result.Form.GroupID != group.ID {
			t.Fatal("expected the form to carry the stored group")
		}

		var stored models.Post
		if err := db.First(&stored, "id = ?", post.ID).Error; err != nil {
			t.Fatalf("failed loading post: %v", err)
		}
		if stored.Text != "ungrouped now" {
			t.Fatalf("expected text untouched by the failed edit, got %q", stored.Text)
		}
	})

	t.Run("unknown post surfaces as not found", func(t *testing.T) {
		_, err := svc.Edit(ctx, EditInput{
			PostID:  uuid.New(),
			ActorID: author.ID,
			Text:    "anything",
		})
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("expected ErrRecordNotFound, got %v", err)
		}
	})
}
