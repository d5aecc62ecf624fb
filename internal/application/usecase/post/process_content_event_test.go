package post

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu/folio/adapters/event"
	"github.com/minhvu/folio/internal/domain/post"
	"github.com/minhvu/folio/pkg/apperror"
	"github.com/minhvu/folio/pkg/logger"
)

type backfillRepo struct {
	post.Repository
	rows     map[uuid.UUID]*post.BlogPost
	setCalls int
}

func (r *backfillRepo) GetByID(ctx context.Context, id uuid.UUID) (*post.BlogPost, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, apperror.NewNotFound("post", id.String())
	}
	return p, nil
}

func (r *backfillRepo) SetReadTime(ctx context.Context, id uuid.UUID, minutes int) error {
	r.setCalls++
	r.rows[id].ReadTime = minutes
	return nil
}

func TestProcessContentEvent_BackfillsUnsetReadTime(t *testing.T) {
	id := uuid.New()
	repo := &backfillRepo{rows: map[uuid.UUID]*post.BlogPost{
		id: {ID: id, Content: strings.Repeat("word ", 450)},
	}}
	uc := NewProcessContentEventUseCase(repo, logger.NewNop())

	err := uc.Execute(context.Background(), event.ContentEvent{Type: event.EventPostCreated, PostID: id})
	require.NoError(t, err)
	assert.Equal(t, 3, repo.rows[id].ReadTime)
}

func TestProcessContentEvent_LeavesExplicitReadTimeAlone(t *testing.T) {
	id := uuid.New()
	repo := &backfillRepo{rows: map[uuid.UUID]*post.BlogPost{
		id: {ID: id, Content: strings.Repeat("word ", 1000), ReadTime: 12},
	}}
	uc := NewProcessContentEventUseCase(repo, logger.NewNop())

	err := uc.Execute(context.Background(), event.ContentEvent{Type: event.EventPostUpdated, PostID: id})
	require.NoError(t, err)
	assert.Zero(t, repo.setCalls)
	assert.Equal(t, 12, repo.rows[id].ReadTime)
}

func TestProcessContentEvent_IgnoresDeletesAndMissingRows(t *testing.T) {
	repo := &backfillRepo{rows: map[uuid.UUID]*post.BlogPost{}}
	uc := NewProcessContentEventUseCase(repo, logger.NewNop())

	assert.NoError(t, uc.Execute(context.Background(), event.ContentEvent{Type: event.EventPostDeleted, PostID: uuid.New()}))
	assert.NoError(t, uc.Execute(context.Background(), event.ContentEvent{Type: event.EventPostUpdated, PostID: uuid.New()}))
}
