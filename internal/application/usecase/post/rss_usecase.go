package post

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/minhvu/folio/internal/config"
	"github.com/minhvu/folio/internal/domain/post"
	"github.com/minhvu/folio/pkg/logger"
)

type RSSUseCase struct {
	postRepo post.Repository
	cfg      config.Config
	logger   logger.Logger
}

func NewRSSUseCase(repo post.Repository, cfg config.Config, log logger.Logger) *RSSUseCase {
	return &RSSUseCase{
		postRepo: repo,
		cfg:      cfg,
		logger:   log,
	}
}

// Execute builds the feed from the same published-only ordering the
// blog index uses.
func (uc *RSSUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	feed := &feeds.Feed{
		Title:       uc.cfg.Site.Name,
		Link:        &feeds.Link{Href: uc.cfg.App.SiteURL},
		Description: uc.cfg.Site.Description,
		Author:      &feeds.Author{Name: uc.cfg.Site.Author},
		Created:     time.Now(),
	}

	posts, err := uc.postRepo.ListPublished(ctx)
	if err != nil {
		uc.logger.Error("Failed to list published posts for RSS", err)
		return nil, err
	}

	var items []*feeds.Item
	for _, p := range posts {
		item := &feeds.Item{
			Title:       p.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/blog/%s", uc.cfg.App.SiteURL, p.Slug)},
			Description: p.Description,
			Created:     p.CreatedAt,
		}
		if p.PublishedAt != nil {
			item.Created = *p.PublishedAt
		}
		items = append(items, item)
	}

	feed.Items = items
	uc.logger.Info("RSS feed generated", zap.Int("item_count", len(items)))
	return feed, nil
}
