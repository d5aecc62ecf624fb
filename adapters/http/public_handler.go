package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	postUC "github.com/minhvu/folio/internal/application/usecase/post"
	profileUC "github.com/minhvu/folio/internal/application/usecase/profile"
	projectUC "github.com/minhvu/folio/internal/application/usecase/project"
	"github.com/minhvu/folio/pkg/logger"
)

type PublicHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	projectUseCase *projectUC.ProjectUseCase
	listPostsUC    *postUC.ListPostsUseCase
	logger         logger.Logger
}

func NewPublicHandler(
	profileUC *profileUC.ProfileUseCase,
	projectUC *projectUC.ProjectUseCase,
	listPostsUC *postUC.ListPostsUseCase,
	log logger.Logger,
) *PublicHandler {
	return &PublicHandler{
		profileUseCase: profileUC,
		projectUseCase: projectUC,
		listPostsUC:    listPostsUC,
		logger:         log,
	}
}

// Home aggregates the landing page. The three reads degrade
// independently: one failing section empties itself and is named in the
// errors map while the others render normally.
func (h *PublicHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	home := HomeDTO{
		Projects: []ProjectDTO{},
		Posts:    []PostSummaryDTO{},
	}
	sectionErrs := map[string]string{}

	if out, err := h.profileUseCase.ExecuteGetProfile(ctx); err != nil {
		h.logger.Warn("Home: profile fetch failed")
		sectionErrs["profile"] = "unavailable"
	} else {
		dto := ToProfileDTO(out.Profile)
		home.Profile = &dto
	}

	if out, err := h.projectUseCase.ExecuteListVisible(ctx); err != nil {
		h.logger.Warn("Home: project fetch failed")
		sectionErrs["projects"] = "unavailable"
	} else {
		home.Projects = ToProjectDTOs(out.Projects)
	}

	if out, err := h.listPostsUC.ExecutePublished(ctx); err != nil {
		h.logger.Warn("Home: post fetch failed")
		sectionErrs["posts"] = "unavailable"
	} else {
		home.Posts = ToPostSummaryDTOs(out.Posts)
	}

	if len(sectionErrs) > 0 {
		home.Errors = sectionErrs
	}
	c.JSON(http.StatusOK, home)
}

// BlogPost serves one published article by slug. Drafts and unknown
// slugs both answer not found.
func (h *PublicHandler) BlogPost(c *gin.Context) {
	slug := c.Param("slug")

	output, err := h.listPostsUC.ExecuteBySlug(c.Request.Context(), postUC.GetPostBySlugInput{Slug: slug})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPostDTO(output.Post))
}
