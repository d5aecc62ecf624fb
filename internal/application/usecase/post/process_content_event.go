package post

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/minhvu/folio/adapters/event"
	"github.com/minhvu/folio/internal/domain/post"
	"github.com/minhvu/folio/pkg/apperror"
	"github.com/minhvu/folio/pkg/logger"
)

// ProcessContentEventUseCase is the worker-side handler for content
// events. It back-fills read_time from the word count whenever the
// admin saved a post without setting one.
type ProcessContentEventUseCase struct {
	postRepo post.Repository
	logger   logger.Logger
}

func NewProcessContentEventUseCase(repo post.Repository, log logger.Logger) *ProcessContentEventUseCase {
	return &ProcessContentEventUseCase{
		postRepo: repo,
		logger:   log,
	}
}

func (uc *ProcessContentEventUseCase) Execute(ctx context.Context, payload event.ContentEvent) error {
	if payload.Type == event.EventPostDeleted {
		return nil
	}

	p, err := uc.postRepo.GetByID(ctx, payload.PostID)
	if err != nil {
		// The post may have been deleted between the event and now.
		if errors.Is(err, apperror.ErrNotFound) {
			uc.logger.Warn("Content event for missing post", zap.String("post_id", payload.PostID.String()))
			return nil
		}
		return err
	}

	if p.ReadTime > 0 {
		return nil
	}

	minutes := post.EstimateReadTime(p.Content)
	if err := uc.postRepo.SetReadTime(ctx, p.ID, minutes); err != nil {
		return err
	}

	uc.logger.Info("Back-filled read time",
		zap.String("post_id", p.ID.String()),
		zap.Int("minutes", minutes),
	)
	return nil
}
