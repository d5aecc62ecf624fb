package post

import (
	"context"

	"github.com/google/uuid"

	"github.com/minhvu/folio/adapters/event"
	"github.com/minhvu/folio/internal/domain/post"
	"github.com/minhvu/folio/pkg/logger"
)

type DeletePostUseCase struct {
	postRepo  post.Repository
	publisher ContentPublisher
	logger    logger.Logger
}

func NewDeletePostUseCase(repo post.Repository, publisher ContentPublisher, log logger.Logger) *DeletePostUseCase {
	return &DeletePostUseCase{
		postRepo:  repo,
		publisher: publisher,
		logger:    log,
	}
}

type DeletePostInput struct {
	ID uuid.UUID
}

func (uc *DeletePostUseCase) Execute(ctx context.Context, input DeletePostInput) error {
	if err := uc.postRepo.Delete(ctx, input.ID); err != nil {
		return err
	}

	uc.publisher.PublishContentEvent(ctx, event.EventPostDeleted, input.ID)
	return nil
}
