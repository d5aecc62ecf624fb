package post

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minhvu/folio/adapters/event"
	"github.com/minhvu/folio/internal/domain/post"
	"github.com/minhvu/folio/pkg/apperror"
	"github.com/minhvu/folio/pkg/logger"
)

// ContentPublisher emits a content event after a successful post
// mutation. Publishing is best effort; implementations log failures.
type ContentPublisher interface {
	PublishContentEvent(ctx context.Context, eventType string, postID uuid.UUID)
}

type CreatePostUseCase struct {
	postRepo  post.Repository
	publisher ContentPublisher
	logger    logger.Logger
}

func NewCreatePostUseCase(repo post.Repository, publisher ContentPublisher, log logger.Logger) *CreatePostUseCase {
	return &CreatePostUseCase{
		postRepo:  repo,
		publisher: publisher,
		logger:    log,
	}
}

type CreatePostInput struct {
	Title       string
	Slug        string
	Description string
	Content     string
	ReadTime    int
	IsPublished bool
}

type CreatePostOutput struct {
	Post *post.BlogPost
}

// Execute derives the slug from the title only when the admin left the
// slug field blank; a typed slug is taken as-is and validated.
func (uc *CreatePostUseCase) Execute(ctx context.Context, input CreatePostInput) (*CreatePostOutput, error) {
	if input.Slug == "" {
		input.Slug = post.Slugify(input.Title)
	}

	newPost := &post.BlogPost{
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
		Content:     input.Content,
		ReadTime:    input.ReadTime,
	}
	newPost.SetPublished(input.IsPublished, time.Now())

	// An unset read time gets the word-count estimate right away, so the
	// public view never serves zero. The worker only back-fills rows
	// written outside this path.
	if newPost.ReadTime == 0 {
		newPost.ReadTime = post.EstimateReadTime(newPost.Content)
	}

	if err := newPost.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("validation failed", err)
	}

	created, err := uc.postRepo.Create(ctx, newPost)
	if err != nil {
		return nil, err
	}

	uc.publisher.PublishContentEvent(ctx, event.EventPostCreated, created.ID)

	return &CreatePostOutput{Post: created}, nil
}
