package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/minhvu/folio/internal/application/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
}

func NewProfileHandler(uc *profileUC.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: uc}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	output, err := h.profileUseCase.ExecuteUpdateProfile(c.Request.Context(), profileUC.UpdateProfileInput{
		Name:               req.Name,
		Initials:           req.Initials,
		Tagline:            req.Tagline,
		AboutText:          req.AboutText,
		IsAvailableForWork: req.IsAvailableForWork,
		GithubURL:          req.GithubURL,
		LinkedinURL:        req.LinkedinURL,
		Email:              req.Email,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}
