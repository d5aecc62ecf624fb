package project

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minhvu/folio/internal/application/service"
	"github.com/minhvu/folio/internal/domain/project"
	"github.com/minhvu/folio/pkg/apperror"
	"github.com/minhvu/folio/pkg/logger"
)

type UploadProjectImageUseCase struct {
	projectRepo project.Repository
	uploader    service.Uploader
	logger      logger.Logger
}

func NewUploadProjectImageUseCase(repo project.Repository, uploader service.Uploader, log logger.Logger) *UploadProjectImageUseCase {
	return &UploadProjectImageUseCase{
		projectRepo: repo,
		uploader:    uploader,
		logger:      log,
	}
}

type UploadProjectImageInput struct {
	ProjectID uuid.UUID
	File      io.Reader
}

type UploadProjectImageOutput struct {
	Project  *project.Project
	ImageURL string
}

// Execute uploads a cover image and stores its URL on the project. The
// project id doubles as the storage public id, so re-uploading replaces
// the previous image instead of leaking orphans.
func (uc *UploadProjectImageUseCase) Execute(ctx context.Context, input UploadProjectImageInput) (*UploadProjectImageOutput, error) {
	target, err := uc.projectRepo.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	url, err := uc.uploader.Upload(ctx, input.File, "projects", input.ProjectID.String())
	if err != nil {
		return nil, apperror.NewInternal("failed to upload project image", err)
	}

	target.ImageURL = &url
	updated, err := uc.projectRepo.Update(ctx, target)
	if err != nil {
		uc.logger.Error("Failed to store project image URL", err, zap.String("project_id", input.ProjectID.String()))
		return nil, err
	}

	return &UploadProjectImageOutput{Project: updated, ImageURL: url}, nil
}
