package services

import (
	"context"
	"errors"
	"strings"

	"github.com/okuznetsov/storefront-api/internal/logger"
	"github.com/okuznetsov/storefront-api/internal/models"
	"github.com/okuznetsov/storefront-api/internal/repositories"
)

// Error variables
var (
	ErrPostNotFound = errors.New("post not found")
	ErrEmptyContent = errors.New("comment content is required")
)

// PostReader defines read-only operations for blog posts.
type PostReader interface {
	List(ctx context.Context, category, tag *string) ([]models.PostDB, error)
	GetByID(ctx context.Context, id int64) (*models.PostDB, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctTags(ctx context.Context) ([]string, error)
}

// PostWriter defines write operations for blog posts.
type PostWriter interface {
	Save(ctx context.Context, p models.PostDB) (*models.PostDB, error)
}

// CommentReader defines read-only operations for comments.
type CommentReader interface {
	ListByPost(ctx context.Context, postID int64) ([]models.CommentDB, error)
}

// CommentWriter defines write operations for comments.
type CommentWriter interface {
	Save(ctx context.Context, postID, userID int64, author, content string) (*models.CommentDB, error)
}

// BlogService handles blog posts and their comments.
type BlogService struct {
	posts         PostReader
	postWriter    PostWriter
	comments      CommentReader
	commentWriter CommentWriter
}

// NewBlogService creates a new BlogService instance.
func NewBlogService(posts PostReader, postWriter PostWriter, comments CommentReader, commentWriter CommentWriter) *BlogService {
	return &BlogService{
		posts:         posts,
		postWriter:    postWriter,
		comments:      comments,
		commentWriter: commentWriter,
	}
}

// ListPosts returns posts filtered by category and/or tag, newest first.
func (svc *BlogService) ListPosts(ctx context.Context, category, tag *string) ([]models.PostDB, error) {
	return svc.posts.List(ctx, category, tag)
}

// GetPost returns one post.
func (svc *BlogService) GetPost(ctx context.Context, id int64) (*models.PostDB, error) {
	post, err := svc.posts.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get post", "id", id, "err", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// CreatePost inserts a post unconditionally.
func (svc *BlogService) CreatePost(ctx context.Context, p models.PostDB) (*models.PostDB, error) {
	post, err := svc.postWriter.Save(ctx, p)
	if err != nil {
		logger.Log.Errorw("failed to save post", "err", err)
		return nil, err
	}
	return post, nil
}

// ListCategories returns the distinct category values across all posts.
func (svc *BlogService) ListCategories(ctx context.Context) ([]string, error) {
	return svc.posts.DistinctCategories(ctx)
}

// ListTags returns the deduplicated union of all tags across all posts.
func (svc *BlogService) ListTags(ctx context.Context) ([]string, error) {
	return svc.posts.DistinctTags(ctx)
}

// ListComments returns comments for a post, newest first.
func (svc *BlogService) ListComments(ctx context.Context, postID int64) ([]models.CommentDB, error) {
	return svc.comments.ListByPost(ctx, postID)
}

// CreateComment stores a comment for a post, denormalizing the author's
// username onto the row. Blank content is rejected before touching storage.
func (svc *BlogService) CreateComment(ctx context.Context, postID int64, user *models.UserDB, content string) (*models.CommentDB, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	comment, err := svc.commentWriter.Save(ctx, postID, user.ID, user.Username, content)
	if err != nil {
		if errors.Is(err, repositories.ErrPostMissing) {
			logger.Log.Errorw("comment references missing post", "post_id", postID)
			return nil, ErrPostNotFound
		}
		logger.Log.Errorw("failed to save comment", "err", err)
		return nil, err
	}
	return comment, nil
}
