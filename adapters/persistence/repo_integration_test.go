package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/minhvu/folio/internal/domain/post"
	"github.com/minhvu/folio/internal/domain/profile"
	"github.com/minhvu/folio/internal/domain/project"
	"github.com/minhvu/folio/pkg/apperror"
	"github.com/minhvu/folio/pkg/logger"
)

type RepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	projectRepo project.Repository
	postRepo    post.Repository
	profileRepo profile.Repository
}

func (s *RepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	testLogger := logger.NewNop()
	s.projectRepo = NewPostgresProjectRepo(pool, testLogger)
	s.postRepo = NewPostgresPostRepo(pool, testLogger)
	s.profileRepo = NewPostgresProfileRepo(pool, testLogger)
}

func (s *RepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func (s *RepoIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	_, err := s.dbPool.Exec(ctx, `TRUNCATE projects, blog_posts, profile`)
	s.Require().NoError(err)
}

func TestRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(RepoIntegrationTestSuite))
}

func (s *RepoIntegrationTestSuite) Test_Project_CreateAssignsServerFields() {
	ctx := context.Background()

	created, err := s.projectRepo.Create(ctx, &project.Project{
		Title:       "Folio",
		Description: "Portfolio backend",
		Tags:        []string{"Go", "Postgres"},
		IsVisible:   true,
	})
	s.Require().NoError(err)
	s.NotZero(created.ID)
	s.False(created.CreatedAt.IsZero())
	s.Equal([]string{"Go", "Postgres"}, created.Tags)
}

func (s *RepoIntegrationTestSuite) Test_Project_ListVisibleFiltersAndOrders() {
	ctx := context.Background()

	_, err := s.projectRepo.Create(ctx, &project.Project{Title: "second", DisplayOrder: 2, IsVisible: true})
	s.Require().NoError(err)
	_, err = s.projectRepo.Create(ctx, &project.Project{Title: "hidden", DisplayOrder: 0, IsVisible: false})
	s.Require().NoError(err)
	_, err = s.projectRepo.Create(ctx, &project.Project{Title: "first", DisplayOrder: 1, IsVisible: true})
	s.Require().NoError(err)

	visible, err := s.projectRepo.ListVisible(ctx)
	s.Require().NoError(err)
	s.Require().Len(visible, 2)
	s.Equal("first", visible[0].Title)
	s.Equal("second", visible[1].Title)

	all, err := s.projectRepo.ListAll(ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *RepoIntegrationTestSuite) Test_Project_DeleteMissingRowIsNotFound() {
	ctx := context.Background()

	created, err := s.projectRepo.Create(ctx, &project.Project{Title: "gone"})
	s.Require().NoError(err)

	s.Require().NoError(s.projectRepo.Delete(ctx, created.ID))

	err = s.projectRepo.Delete(ctx, created.ID)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *RepoIntegrationTestSuite) Test_Post_PublishedFilterAndSlugRoute() {
	ctx := context.Background()

	now := time.Now()
	draft := &post.BlogPost{Title: "Draft", Slug: "draft-post", Content: "wip"}
	published := &post.BlogPost{Title: "Live", Slug: "live-post", Content: "done"}
	published.SetPublished(true, now)

	_, err := s.postRepo.Create(ctx, draft)
	s.Require().NoError(err)
	_, err = s.postRepo.Create(ctx, published)
	s.Require().NoError(err)

	listed, err := s.postRepo.ListPublished(ctx)
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal("live-post", listed[0].Slug)

	_, err = s.postRepo.GetPublishedBySlug(ctx, "draft-post")
	s.ErrorIs(err, apperror.ErrNotFound)

	got, err := s.postRepo.GetPublishedBySlug(ctx, "live-post")
	s.Require().NoError(err)
	s.NotNil(got.PublishedAt)
}

func (s *RepoIntegrationTestSuite) Test_Post_ListAllOrdersByCreatedAtDesc() {
	ctx := context.Background()

	older := &post.BlogPost{Title: "Older", Slug: "older"}
	created, err := s.postRepo.Create(ctx, older)
	s.Require().NoError(err)
	_, err = s.dbPool.Exec(ctx, `UPDATE blog_posts SET created_at = created_at - interval '1 hour' WHERE id = $1`, created.ID)
	s.Require().NoError(err)

	_, err = s.postRepo.Create(ctx, &post.BlogPost{Title: "Newer", Slug: "newer"})
	s.Require().NoError(err)

	all, err := s.postRepo.ListAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("newer", all[0].Slug)
	s.Equal("older", all[1].Slug)
}

func (s *RepoIntegrationTestSuite) Test_Post_DuplicateSlugConflicts() {
	ctx := context.Background()

	_, err := s.postRepo.Create(ctx, &post.BlogPost{Title: "One", Slug: "same"})
	s.Require().NoError(err)

	_, err = s.postRepo.Create(ctx, &post.BlogPost{Title: "Two", Slug: "same"})
	s.ErrorIs(err, apperror.ErrConflict)
}

func (s *RepoIntegrationTestSuite) Test_Post_SetReadTime() {
	ctx := context.Background()

	created, err := s.postRepo.Create(ctx, &post.BlogPost{Title: "T", Slug: "t"})
	s.Require().NoError(err)

	s.Require().NoError(s.postRepo.SetReadTime(ctx, created.ID, 7))

	got, err := s.postRepo.GetByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(7, got.ReadTime)
}

func (s *RepoIntegrationTestSuite) Test_Profile_SingletonSemantics() {
	ctx := context.Background()

	_, err := s.profileRepo.Get(ctx)
	s.ErrorIs(err, apperror.ErrNotFound)

	_, err = s.dbPool.Exec(ctx, `INSERT INTO profile (name) VALUES ('Only One')`)
	s.Require().NoError(err)

	p, err := s.profileRepo.Get(ctx)
	s.Require().NoError(err)
	s.Equal("Only One", p.Name)

	_, err = s.dbPool.Exec(ctx, `INSERT INTO profile (name) VALUES ('Second Row')`)
	s.Require().NoError(err)

	_, err = s.profileRepo.Get(ctx)
	s.Error(err)
}

func (s *RepoIntegrationTestSuite) Test_Profile_UpdateReturnsStoredRow() {
	ctx := context.Background()

	_, err := s.dbPool.Exec(ctx, `INSERT INTO profile (name) VALUES ('Before')`)
	s.Require().NoError(err)

	current, err := s.profileRepo.Get(ctx)
	s.Require().NoError(err)

	current.Name = "After"
	current.IsAvailableForWork = true
	updated, err := s.profileRepo.Update(ctx, current)
	s.Require().NoError(err)
	s.Equal("After", updated.Name)
	s.True(updated.IsAvailableForWork)
}
