package cms

import (
	"sync"

	"github.com/google/uuid"

	"github.com/minhvu/folio/internal/domain/post"
	"github.com/minhvu/folio/internal/domain/project"
)

// Workspace is the admin's resident copy of both unfiltered lists.
// Mutations reconcile it from their own response row instead of
// re-fetching: append on create, replace by id on update, remove by id
// on delete. A failed mutation never touches it.
type Workspace struct {
	mu       sync.RWMutex
	loaded   bool
	projects []*project.Project
	posts    []*post.BlogPost
}

func NewWorkspace() *Workspace {
	return &Workspace{}
}

func (w *Workspace) Loaded() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loaded
}

// ReplaceAll installs freshly fetched lists, marking the workspace
// loaded. Used by the bulk load on entering the authenticated state.
func (w *Workspace) ReplaceAll(projects []*project.Project, posts []*post.BlogPost) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.projects = projects
	w.posts = posts
	w.loaded = true
}

// Clear drops both lists. Fired on sign-out and on session expiry.
func (w *Workspace) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.projects = nil
	w.posts = nil
	w.loaded = false
}

func (w *Workspace) Projects() []*project.Project {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*project.Project, len(w.projects))
	copy(out, w.projects)
	return out
}

func (w *Workspace) Posts() []*post.BlogPost {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*post.BlogPost, len(w.posts))
	copy(out, w.posts)
	return out
}

func (w *Workspace) AddProject(p *project.Project) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.projects = append(w.projects, p)
}

func (w *Workspace) ReplaceProject(p *project.Project) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, existing := range w.projects {
		if existing.ID == p.ID {
			w.projects[i] = p
			return
		}
	}
}

func (w *Workspace) RemoveProject(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, existing := range w.projects {
		if existing.ID == id {
			w.projects = append(w.projects[:i], w.projects[i+1:]...)
			return
		}
	}
}

func (w *Workspace) AddPost(p *post.BlogPost) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.posts = append(w.posts, p)
}

func (w *Workspace) ReplacePost(p *post.BlogPost) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, existing := range w.posts {
		if existing.ID == p.ID {
			w.posts[i] = p
			return
		}
	}
}

func (w *Workspace) RemovePost(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, existing := range w.posts {
		if existing.ID == id {
			w.posts = append(w.posts[:i], w.posts[i+1:]...)
			return
		}
	}
}
