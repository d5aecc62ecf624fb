package cms

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/minhvu/folio/internal/domain/post"
	"github.com/minhvu/folio/internal/domain/project"
	"github.com/minhvu/folio/pkg/logger"
)

// Loader fetches both unfiltered admin lists.
type Loader interface {
	AllProjects(ctx context.Context) ([]*project.Project, error)
	AllPosts(ctx context.Context) ([]*post.BlogPost, error)
}

// Console wires the session gate to the workspace: entering the
// authenticated state loads both admin lists concurrently, and leaving
// it clears them.
type Console struct {
	Gate      *Gate
	Workspace *Workspace

	loader Loader
	logger logger.Logger
}

func NewConsole(loader Loader, log logger.Logger) *Console {
	c := &Console{
		Gate:      NewGate(),
		Workspace: NewWorkspace(),
		loader:    loader,
		logger:    log,
	}

	c.Gate.Subscribe(func(old, next State) {
		switch {
		case next == StateAuthenticated:
			if err := c.Load(context.Background()); err != nil {
				c.logger.Error("Failed to load admin workspace", err)
			}
		case old == StateAuthenticated:
			c.Workspace.Clear()
		}
	})

	return c
}

// Load fetches both lists concurrently and installs them atomically.
// On any fetch error the workspace is left as it was.
func (c *Console) Load(ctx context.Context) error {
	var (
		projects []*project.Project
		posts    []*post.BlogPost
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = c.loader.AllProjects(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = c.loader.AllPosts(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	c.Workspace.ReplaceAll(projects, posts)
	return nil
}

// EnsureLoaded loads the workspace if nothing has populated it yet.
// Admin list reads go through here so a freshly restarted process can
// still serve an already-authenticated session.
func (c *Console) EnsureLoaded(ctx context.Context) error {
	if c.Workspace.Loaded() {
		return nil
	}
	return c.Load(ctx)
}
