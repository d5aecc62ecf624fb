package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/minhvu/folio/internal/domain/project"
	"github.com/minhvu/folio/pkg/logger"
)

type ProjectUseCase struct {
	projectRepo project.Repository
	logger      logger.Logger
}

func NewProjectUseCase(repo project.Repository, log logger.Logger) *ProjectUseCase {
	return &ProjectUseCase{
		projectRepo: repo,
		logger:      log,
	}
}

type ListProjectsOutput struct {
	Projects []*project.Project
}

// ExecuteListVisible returns the public portfolio: visible projects in
// display order.
func (uc *ProjectUseCase) ExecuteListVisible(ctx context.Context) (*ListProjectsOutput, error) {
	projects, err := uc.projectRepo.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	return &ListProjectsOutput{Projects: projects}, nil
}

// ExecuteListAll returns the admin view, hidden projects included.
func (uc *ProjectUseCase) ExecuteListAll(ctx context.Context) (*ListProjectsOutput, error) {
	projects, err := uc.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ListProjectsOutput{Projects: projects}, nil
}

type SaveProjectInput struct {
	Title        string
	Description  string
	Tags         []string
	URL          *string
	GithubURL    *string
	ImageURL     *string
	DisplayOrder int
	IsVisible    bool
}

type SaveProjectOutput struct {
	Project *project.Project
}

func (uc *ProjectUseCase) ExecuteCreate(ctx context.Context, input SaveProjectInput) (*SaveProjectOutput, error) {
	p := &project.Project{
		Title:        input.Title,
		Description:  input.Description,
		Tags:         input.Tags,
		URL:          input.URL,
		GithubURL:    input.GithubURL,
		ImageURL:     input.ImageURL,
		DisplayOrder: input.DisplayOrder,
		IsVisible:    input.IsVisible,
	}

	created, err := uc.projectRepo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	return &SaveProjectOutput{Project: created}, nil
}

func (uc *ProjectUseCase) ExecuteUpdate(ctx context.Context, id uuid.UUID, input SaveProjectInput) (*SaveProjectOutput, error) {
	p := &project.Project{
		ID:           id,
		Title:        input.Title,
		Description:  input.Description,
		Tags:         input.Tags,
		URL:          input.URL,
		GithubURL:    input.GithubURL,
		ImageURL:     input.ImageURL,
		DisplayOrder: input.DisplayOrder,
		IsVisible:    input.IsVisible,
	}

	updated, err := uc.projectRepo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	return &SaveProjectOutput{Project: updated}, nil
}

func (uc *ProjectUseCase) ExecuteDelete(ctx context.Context, id uuid.UUID) error {
	return uc.projectRepo.Delete(ctx, id)
}
