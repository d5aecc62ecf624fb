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

type UpdatePostUseCase struct {
	postRepo  post.Repository
	publisher ContentPublisher
	logger    logger.Logger
}

func NewUpdatePostUseCase(repo post.Repository, publisher ContentPublisher, log logger.Logger) *UpdatePostUseCase {
	return &UpdatePostUseCase{
		postRepo:  repo,
		publisher: publisher,
		logger:    log,
	}
}

type UpdatePostInput struct {
	ID          uuid.UUID
	Title       string
	Slug        string
	Description string
	Content     string
	ReadTime    int
	IsPublished bool
}

type UpdatePostOutput struct {
	Post *post.BlogPost
}

// Execute overwrites every editable field. The publish timestamp is
// recomputed from the flag on each save, so republishing an old post
// moves it to the top of the public index.
func (uc *UpdatePostUseCase) Execute(ctx context.Context, input UpdatePostInput) (*UpdatePostOutput, error) {
	updated := &post.BlogPost{
		ID:          input.ID,
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
		Content:     input.Content,
		ReadTime:    input.ReadTime,
	}
	updated.SetPublished(input.IsPublished, time.Now())

	// An admin who clears the read time gets the estimate back, same as
	// on create.
	if updated.ReadTime == 0 {
		updated.ReadTime = post.EstimateReadTime(updated.Content)
	}

	if err := updated.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("validation failed", err)
	}

	stored, err := uc.postRepo.Update(ctx, updated)
	if err != nil {
		return nil, err
	}

	uc.publisher.PublishContentEvent(ctx, event.EventPostUpdated, stored.ID)

	return &UpdatePostOutput{Post: stored}, nil
}
