package post

import (
	"context"

	"github.com/minhvu/folio/internal/domain/post"
)

type ListPostsUseCase struct {
	postRepo post.Repository
}

func NewListPostsUseCase(repo post.Repository) *ListPostsUseCase {
	return &ListPostsUseCase{postRepo: repo}
}

type ListPostsOutput struct {
	Posts []*post.BlogPost
}

// ExecutePublished returns the public blog index: published posts only,
// newest publish date first.
func (uc *ListPostsUseCase) ExecutePublished(ctx context.Context) (*ListPostsOutput, error) {
	posts, err := uc.postRepo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	return &ListPostsOutput{Posts: posts}, nil
}

// ExecuteAll returns the admin index: every post including drafts,
// newest created first.
func (uc *ListPostsUseCase) ExecuteAll(ctx context.Context) (*ListPostsOutput, error) {
	posts, err := uc.postRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ListPostsOutput{Posts: posts}, nil
}

type GetPostBySlugInput struct {
	Slug string
}

type GetPostBySlugOutput struct {
	Post *post.BlogPost
}

// ExecuteBySlug resolves a public article page. Drafts are not
// reachable by slug, so an unpublished match reads as not found.
func (uc *ListPostsUseCase) ExecuteBySlug(ctx context.Context, input GetPostBySlugInput) (*GetPostBySlugOutput, error) {
	p, err := uc.postRepo.GetPublishedBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	return &GetPostBySlugOutput{Post: p}, nil
}
