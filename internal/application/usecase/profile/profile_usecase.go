package profile

import (
	"context"
	"fmt"

	"github.com/minhvu/folio/internal/domain/profile"
)

type ProfileUseCase struct {
	profileRepo profile.Repository
}

func NewProfileUseCase(repo profile.Repository) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
	}
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}

type UpdateProfileInput struct {
	Name               string
	Initials           string
	Tagline            string
	AboutText          string
	IsAvailableForWork bool
	GithubURL          *string
	LinkedinURL        *string
	Email              *string
}

type UpdateProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteUpdateProfile writes every mutable field of the singleton row.
// The row id is read first so the caller never has to know it.
func (uc *ProfileUseCase) ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	current, err := uc.profileRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile for update failed: %w", err)
	}

	current.Name = input.Name
	current.Initials = input.Initials
	current.Tagline = input.Tagline
	current.AboutText = input.AboutText
	current.IsAvailableForWork = input.IsAvailableForWork
	current.GithubURL = input.GithubURL
	current.LinkedinURL = input.LinkedinURL
	current.Email = input.Email

	updated, err := uc.profileRepo.Update(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("update profile failed: %w", err)
	}
	return &UpdateProfileOutput{Profile: updated}, nil
}
