package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authUC "github.com/minhvu/folio/internal/application/usecase/auth"
	postUC "github.com/minhvu/folio/internal/application/usecase/post"
	profileUC "github.com/minhvu/folio/internal/application/usecase/profile"
	projectUC "github.com/minhvu/folio/internal/application/usecase/project"
	"github.com/minhvu/folio/internal/cms"
	"github.com/minhvu/folio/internal/domain/post"
	"github.com/minhvu/folio/internal/domain/profile"
	"github.com/minhvu/folio/internal/domain/project"
	"github.com/minhvu/folio/internal/domain/user"
	"github.com/minhvu/folio/pkg/apperror"
	"github.com/minhvu/folio/pkg/auth"
	"github.com/minhvu/folio/pkg/logger"
)

// In-memory repositories backing the handler tests.

type memUserRepo struct {
	users map[string]*user.User
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

type memProfileRepo struct {
	row *profile.Profile
}

func (r *memProfileRepo) Get(ctx context.Context) (*profile.Profile, error) {
	if r.row == nil {
		return nil, apperror.NewNotFound("profile", "singleton")
	}
	cp := *r.row
	return &cp, nil
}

func (r *memProfileRepo) Update(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	if r.row == nil {
		return nil, apperror.NewNotFound("profile", p.ID.String())
	}
	cp := *p
	cp.UpdatedAt = time.Now()
	r.row = &cp
	out := cp
	return &out, nil
}

type memProjectRepo struct {
	rows     map[uuid.UUID]*project.Project
	listAlls int
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{rows: map[uuid.UUID]*project.Project{}}
}

func (r *memProjectRepo) sorted(filter func(*project.Project) bool) []*project.Project {
	var out []*project.Project
	for _, p := range r.rows {
		if filter(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out
}

func (r *memProjectRepo) ListVisible(ctx context.Context) ([]*project.Project, error) {
	return r.sorted(func(p *project.Project) bool { return p.IsVisible }), nil
}

func (r *memProjectRepo) ListAll(ctx context.Context) ([]*project.Project, error) {
	r.listAlls++
	return r.sorted(func(*project.Project) bool { return true }), nil
}

func (r *memProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, apperror.NewNotFound("project", id.String())
	}
	cp := *p
	return &cp, nil
}

func (r *memProjectRepo) Create(ctx context.Context, p *project.Project) (*project.Project, error) {
	cp := *p
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.rows[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memProjectRepo) Update(ctx context.Context, p *project.Project) (*project.Project, error) {
	if _, ok := r.rows[p.ID]; !ok {
		return nil, apperror.NewNotFound("project", p.ID.String())
	}
	cp := *p
	cp.UpdatedAt = time.Now()
	r.rows[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return apperror.NewNotFound("project", id.String())
	}
	delete(r.rows, id)
	return nil
}

type memPostRepo struct {
	rows map[uuid.UUID]*post.BlogPost
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{rows: map[uuid.UUID]*post.BlogPost{}}
}

func (r *memPostRepo) ListPublished(ctx context.Context) ([]*post.BlogPost, error) {
	var out []*post.BlogPost
	for _, p := range r.rows {
		if p.IsPublished {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(*out[j].PublishedAt) })
	return out, nil
}

func (r *memPostRepo) ListAll(ctx context.Context) ([]*post.BlogPost, error) {
	var out []*post.BlogPost
	for _, p := range r.rows {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memPostRepo) GetPublishedBySlug(ctx context.Context, slug string) (*post.BlogPost, error) {
	for _, p := range r.rows {
		if p.Slug == slug && p.IsPublished {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("post", slug)
}

func (r *memPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*post.BlogPost, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, apperror.NewNotFound("post", id.String())
	}
	cp := *p
	return &cp, nil
}

func (r *memPostRepo) Create(ctx context.Context, p *post.BlogPost) (*post.BlogPost, error) {
	cp := *p
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.rows[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memPostRepo) Update(ctx context.Context, p *post.BlogPost) (*post.BlogPost, error) {
	existing, ok := r.rows[p.ID]
	if !ok {
		return nil, apperror.NewNotFound("post", p.ID.String())
	}
	cp := *p
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	r.rows[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return apperror.NewNotFound("post", id.String())
	}
	delete(r.rows, id)
	return nil
}

func (r *memPostRepo) SetReadTime(ctx context.Context, id uuid.UUID, minutes int) error {
	p, ok := r.rows[id]
	if !ok {
		return apperror.NewNotFound("post", id.String())
	}
	p.ReadTime = minutes
	return nil
}

type memSessionStore struct {
	revoked map[string]bool
}

func (s *memSessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.revoked[tokenID] = true
	return nil
}

func (s *memSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], nil
}

type nopPublisher struct{}

func (nopPublisher) PublishContentEvent(ctx context.Context, eventType string, postID uuid.UUID) {}

type testLoader struct {
	projectRepo *memProjectRepo
	postRepo    *memPostRepo
}

func (l *testLoader) AllProjects(ctx context.Context) ([]*project.Project, error) {
	return l.projectRepo.ListAll(ctx)
}

func (l *testLoader) AllPosts(ctx context.Context) ([]*post.BlogPost, error) {
	return l.postRepo.ListAll(ctx)
}

type testEnv struct {
	router      *gin.Engine
	projectRepo *memProjectRepo
	postRepo    *memPostRepo
	console     *cms.Console
}

const (
	testEmail    = "admin@example.com"
	testPassword = "correct-horse"
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	userRepo := &memUserRepo{users: map[string]*user.User{
		testEmail: {ID: uuid.New(), Email: testEmail, PasswordHash: hash},
	}}
	profileRepo := &memProfileRepo{row: &profile.Profile{ID: uuid.New(), Name: "Minh Vu", Initials: "MV"}}
	projectRepo := newMemProjectRepo()
	postRepo := newMemPostRepo()
	sessions := &memSessionStore{revoked: map[string]bool{}}

	jwtSvc := auth.NewJWTService("handler-test-secret", time.Hour)
	publisher := nopPublisher{}

	console := cms.NewConsole(&testLoader{projectRepo: projectRepo, postRepo: postRepo}, log)

	handlers := Handlers{
		Auth: NewAuthHandler(
			authUC.NewSignInUseCase(userRepo, jwtSvc, log),
			authUC.NewSignOutUseCase(jwtSvc, sessions, log),
			authUC.NewCurrentSessionUseCase(jwtSvc, sessions, log),
			console.Gate,
			log,
		),
		Profile: NewProfileHandler(profileUC.NewProfileUseCase(profileRepo)),
		Project: NewProjectHandler(
			projectUC.NewProjectUseCase(projectRepo, log),
			projectUC.NewUploadProjectImageUseCase(projectRepo, nil, log),
			console,
		),
		Post: NewPostHandler(
			postUC.NewCreatePostUseCase(postRepo, publisher, log),
			postUC.NewUpdatePostUseCase(postRepo, publisher, log),
			postUC.NewDeletePostUseCase(postRepo, publisher, log),
			console,
		),
		Public: NewPublicHandler(
			profileUC.NewProfileUseCase(profileRepo),
			projectUC.NewProjectUseCase(projectRepo, log),
			postUC.NewListPostsUseCase(postRepo),
			log,
		),
		// The feed route is mounted but not exercised here; the RSS use
		// case is covered by its own test.
		RSS: NewRSSHandler(nil, log),
	}

	sessionUC := authUC.NewCurrentSessionUseCase(jwtSvc, sessions, log)
	router := NewRouter(handlers, AuthMiddleware(sessionUC, console.Gate, log), ErrorMiddleware(log))

	return &testEnv{router: router, projectRepo: projectRepo, postRepo: postRepo, console: console}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/admin/auth/login", "", gin.H{
		"email": testEmail, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func TestLogin_BadCredentialsSurfacedVerbatim(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/auth/login", "", gin.H{
		"email": testEmail, "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid login credentials"}`, w.Body.String())
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/admin/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateProject_AppearsOnceWithoutRefetch(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	// Force the initial workspace load, then freeze the fetch counter.
	w := env.do(t, http.MethodGet, "/api/admin/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetches := env.projectRepo.listAlls

	w = env.do(t, http.MethodPost, "/api/admin/projects", token, gin.H{
		"title": "Folio", "tags": "React, , TypeScript ,", "is_visible": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, []string{"React", "TypeScript"}, created.Tags)

	w = env.do(t, http.MethodGet, "/api/admin/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))

	var matches int
	for _, p := range listed {
		if p.ID == created.ID {
			matches++
		}
	}
	assert.Equal(t, 1, matches)
	assert.Equal(t, fetches, env.projectRepo.listAlls, "admin list must be served from the workspace")
}

func TestCreatePost_DerivesSlugWhenBlank(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPost, "/api/admin/posts", token, gin.H{
		"title": "Hello, World! 2024", "content": "body",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created PostDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "hello-world-2024", created.Slug)
	assert.Nil(t, created.PublishedAt)
}

func TestCreatePost_UnsetReadTimeGetsEstimate(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPost, "/api/admin/posts", token, gin.H{
		"title": "Long read", "slug": "long-read", "content": strings.Repeat("word ", 450),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created PostDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 3, created.ReadTime)

	w = env.do(t, http.MethodPost, "/api/admin/posts", token, gin.H{
		"title": "Typed", "slug": "typed", "content": "body", "read_time": 9,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 9, created.ReadTime)
}

func TestUpdatePost_PublishToggleRecomputesTimestamp(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPost, "/api/admin/posts", token, gin.H{
		"title": "Draft", "slug": "draft", "content": "body",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created PostDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodPut, "/api/admin/posts/"+created.ID, token, gin.H{
		"title": "Draft", "slug": "draft", "content": "body", "is_published": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var published PostDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &published))
	require.NotNil(t, published.PublishedAt)

	w = env.do(t, http.MethodPut, "/api/admin/posts/"+created.ID, token, gin.H{
		"title": "Draft", "slug": "draft", "content": "body", "is_published": false,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var unpublished PostDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unpublished))
	assert.Nil(t, unpublished.PublishedAt)
}

func TestDeletePost_FailureKeepsRow(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPost, "/api/admin/posts", token, gin.H{
		"title": "Keep me", "slug": "keep-me",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created PostDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Unknown id: 404 and the existing row stays listed.
	w = env.do(t, http.MethodDelete, "/api/admin/posts/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/admin/posts", token, nil)
	var listed []PostSummaryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	w = env.do(t, http.MethodDelete, "/api/admin/posts/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/admin/posts", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed)
}

func TestLogout_RevokesTokenAndClearsWorkspace(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodGet, "/api/admin/posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/admin/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.False(t, env.console.Workspace.Loaded())

	w = env.do(t, http.MethodGet, "/api/admin/posts", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_AnonymousCheckDoesNotDemoteGate(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodGet, "/api/admin/posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, cms.StateAuthenticated, env.console.Gate.Current())

	// A tokenless session check from a stranger must not touch the
	// admin's state or wipe the loaded workspace.
	w = env.do(t, http.MethodGet, "/api/admin/auth/session", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	assert.Equal(t, cms.StateAuthenticated, env.console.Gate.Current())
	assert.True(t, env.console.Workspace.Loaded())

	w = env.do(t, http.MethodGet, "/api/admin/posts", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPublicSurface_FiltersHiddenAndDraftRows(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPost, "/api/admin/projects", token, gin.H{
		"title": "Visible", "is_visible": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.do(t, http.MethodPost, "/api/admin/projects", token, gin.H{
		"title": "Hidden", "is_visible": false,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/admin/posts", token, gin.H{
		"title": "Live", "slug": "live", "is_published": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.do(t, http.MethodPost, "/api/admin/posts", token, gin.H{
		"title": "Draft", "slug": "draft",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var home HomeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &home))
	require.Len(t, home.Projects, 1)
	assert.Equal(t, "Visible", home.Projects[0].Title)
	require.Len(t, home.Posts, 1)
	assert.Equal(t, "live", home.Posts[0].Slug)

	w = env.do(t, http.MethodGet, "/blog/live", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/blog/draft", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
