package http

import (
	"time"

	"github.com/minhvu/folio/internal/domain/post"
	"github.com/minhvu/folio/internal/domain/profile"
	"github.com/minhvu/folio/internal/domain/project"
)

// Profile DTOs

type ProfileDTO struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Initials           string    `json:"initials"`
	Tagline            string    `json:"tagline"`
	AboutText          string    `json:"about_text"`
	IsAvailableForWork bool      `json:"is_available_for_work"`
	GithubURL          *string   `json:"github_url"`
	LinkedinURL        *string   `json:"linkedin_url"`
	Email              *string   `json:"email"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type UpdateProfileRequest struct {
	Name               string  `json:"name" binding:"required"`
	Initials           string  `json:"initials"`
	Tagline            string  `json:"tagline"`
	AboutText          string  `json:"about_text"`
	IsAvailableForWork bool    `json:"is_available_for_work"`
	GithubURL          *string `json:"github_url"`
	LinkedinURL        *string `json:"linkedin_url"`
	Email              *string `json:"email"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	return ProfileDTO{
		ID:                 p.ID.String(),
		Name:               p.Name,
		Initials:           p.Initials,
		Tagline:            p.Tagline,
		AboutText:          p.AboutText,
		IsAvailableForWork: p.IsAvailableForWork,
		GithubURL:          p.GithubURL,
		LinkedinURL:        p.LinkedinURL,
		Email:              p.Email,
		UpdatedAt:          p.UpdatedAt,
	}
}

// Project DTOs

type ProjectDTO struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Tags         []string  `json:"tags"`
	URL          *string   `json:"url"`
	GithubURL    *string   `json:"github_url"`
	ImageURL     *string   `json:"image_url"`
	DisplayOrder int       `json:"display_order"`
	IsVisible    bool      `json:"is_visible"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SaveProjectRequest serves both create and update. Tags arrive as the
// admin form's single comma-separated string.
type SaveProjectRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	Tags         string  `json:"tags"`
	URL          *string `json:"url"`
	GithubURL    *string `json:"github_url"`
	ImageURL     *string `json:"image_url"`
	DisplayOrder int     `json:"display_order"`
	IsVisible    bool    `json:"is_visible"`
}

func ToProjectDTO(p *project.Project) ProjectDTO {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProjectDTO{
		ID:           p.ID.String(),
		Title:        p.Title,
		Description:  p.Description,
		Tags:         tags,
		URL:          p.URL,
		GithubURL:    p.GithubURL,
		ImageURL:     p.ImageURL,
		DisplayOrder: p.DisplayOrder,
		IsVisible:    p.IsVisible,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ToProjectDTOs(projects []*project.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}

// Post DTOs

type PostDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	ReadTime    int        `json:"read_time"`
	PublishedAt *time.Time `json:"published_at"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PostSummaryDTO omits the markdown body; used by list endpoints.
type PostSummaryDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ReadTime    int        `json:"read_time"`
	PublishedAt *time.Time `json:"published_at"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type SavePostRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Content     string `json:"content"`
	ReadTime    int    `json:"read_time" binding:"min=0"`
	IsPublished bool   `json:"is_published"`
}

func ToPostDTO(p *post.BlogPost) PostDTO {
	return PostDTO{
		ID:          p.ID.String(),
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Content:     p.Content,
		ReadTime:    p.ReadTime,
		PublishedAt: p.PublishedAt,
		IsPublished: p.IsPublished,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToPostSummaryDTO(p *post.BlogPost) PostSummaryDTO {
	return PostSummaryDTO{
		ID:          p.ID.String(),
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		ReadTime:    p.ReadTime,
		PublishedAt: p.PublishedAt,
		IsPublished: p.IsPublished,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToPostSummaryDTOs(posts []*post.BlogPost) []PostSummaryDTO {
	dtos := make([]PostSummaryDTO, len(posts))
	for i, p := range posts {
		dtos[i] = ToPostSummaryDTO(p)
	}
	return dtos
}

// HomeDTO is the public landing page aggregate. Each section degrades
// independently: a failed fetch leaves its section empty and flags it.
type HomeDTO struct {
	Profile  *ProfileDTO       `json:"profile"`
	Projects []ProjectDTO      `json:"projects"`
	Posts    []PostSummaryDTO  `json:"posts"`
	Errors   map[string]string `json:"errors,omitempty"`
}
