package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yatube/backend/internal/models"
	"gorm.io/gorm"
)

// AuthoringService owns the two write paths for posts. Each call is a
// single atomic step; there is no draft state between them.
type AuthoringService struct {
	DB *gorm.DB
}

func NewAuthoringService(db *gorm.DB) *AuthoringService {
	return &AuthoringService{DB: db}
}

type CreateInput struct {
	AuthorID uuid.UUID
	Text     string
	GroupID  *uuid.UUID
}

type EditInput struct {
	PostID  uuid.UUID
	ActorID uuid.UUID
	Text    string
	GroupID *uuid.UUID
}

// EditDecision is the guard verdict: either the actor may edit, or the
// caller should bounce to the read-only detail view. A failed check is
// a redirect, not an error, so the response never reveals whether the
// actor guessed a real post or who owns it.
type EditDecision struct {
	Authorized bool
	RedirectTo string
}

// EditForm mirrors the creation form plus the two fields that mark an
// edit re-render.
type EditForm struct {
	Text    string     `json:"text"`
	GroupID *uuid.UUID `json:"groupID,omitempty"`
	IsEdit  bool       `json:"isEdit"`
	PostID  uuid.UUID  `json:"postID"`
}

// EditResult has exactly one populated branch: Post+RedirectTo on
// success, RedirectTo alone when the guard refused, Form when the new
// text failed validation.
type EditResult struct {
	Post       *models.Post
	RedirectTo string
	Form       *EditForm
}

func PostDetailPath(postID uuid.UUID) string {
	return fmt.Sprintf("/api/posts/%s", postID)
}

func ProfilePath(username string) string {
	return fmt.Sprintf("/api/users/%s/posts", username)
}

func (s *AuthoringService) CanEdit(actorID uuid.UUID, post *models.Post) EditDecision {
	if actorID == post.AuthorID {
		return EditDecision{Authorized: true}
	}
	return EditDecision{RedirectTo: PostDetailPath(post.ID)}
}

// Create validates the text and persists a new post with PubDate set
// to the current time. On ErrEmptyContent nothing is written.
func (s *AuthoringService) Create(ctx context.Context, in CreateInput) (*models.Post, error) {
	if err := ValidateText(in.Text); err != nil {
		return nil, err
	}
	if err := s.checkGroup(ctx, in.GroupID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     in.Text,
		PubDate:  time.Now().UTC(),
		AuthorID: in.AuthorID,
		GroupID:  in.GroupID,
	}
	if err := s.DB.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Edit runs guard then validation, and on success updates only text
// and group_id. Author and pub_date are never touched. Concurrent
// edits are last-write-wins; there is no version column.
func (s *AuthoringService) Edit(ctx context.Context, in EditInput) (*EditResult, error) {
	var post models.Post
	if err := s.DB.WithContext(ctx).First(&post, "id = ?", in.PostID).Error; err != nil {
		return nil, err
	}

	decision := s.CanEdit(in.ActorID, &post)
	if !decision.Authorized {
		return &EditResult{RedirectTo: decision.RedirectTo}, nil
	}

	if err := ValidateText(in.Text); err != nil {
		// re-render with the post's stored group and the rejected text
		return &EditResult{Form: &EditForm{
			Text:    in.Text,
			GroupID: post.GroupID,
			IsEdit:  true,
			PostID:  post.ID,
		}}, nil
	}
	if err := s.checkGroup(ctx, in.GroupID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"text":     in.Text,
		"group_id": in.GroupID,
	}
	if err := s.DB.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	post.Text = in.Text
	post.GroupID = in.GroupID
	return &EditResult{Post: &post, RedirectTo: PostDetailPath(post.ID)}, nil
}

func (s *AuthoringService) checkGroup(ctx context.Context, groupID *uuid.UUID) error {
	if groupID == nil {
		return nil
	}
	var group models.Group
	return s.DB.WithContext(ctx).First(&group, "id = ?", *groupID).Error
}
