package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	projectUC "github.com/minhvu/folio/internal/application/usecase/project"
	"github.com/minhvu/folio/internal/cms"
	"github.com/minhvu/folio/internal/domain/project"
)

type ProjectHandler struct {
	projectUseCase *projectUC.ProjectUseCase
	uploadUseCase  *projectUC.UploadProjectImageUseCase
	console        *cms.Console
}

func NewProjectHandler(uc *projectUC.ProjectUseCase, uploadUC *projectUC.UploadProjectImageUseCase, console *cms.Console) *ProjectHandler {
	return &ProjectHandler{
		projectUseCase: uc,
		uploadUseCase:  uploadUC,
		console:        console,
	}
}

// ListProjects serves the admin list from the workspace. Mutations keep
// the workspace reconciled, so no re-fetch happens between them.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	if err := h.console.EnsureLoaded(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProjectDTOs(h.console.Workspace.Projects()))
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req SaveProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	output, err := h.projectUseCase.ExecuteCreate(c.Request.Context(), saveProjectInput(req))
	if err != nil {
		c.Error(err)
		return
	}

	h.console.Workspace.AddProject(output.Project)

	c.JSON(http.StatusCreated, ToProjectDTO(output.Project))
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var req SaveProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	output, err := h.projectUseCase.ExecuteUpdate(c.Request.Context(), id, saveProjectInput(req))
	if err != nil {
		c.Error(err)
		return
	}

	h.console.Workspace.ReplaceProject(output.Project)

	c.JSON(http.StatusOK, ToProjectDTO(output.Project))
}

// DeleteProject removes the row and, only on success, drops it from the
// workspace; a failed delete leaves the row visible.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	if err := h.projectUseCase.ExecuteDelete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	h.console.Workspace.RemoveProject(id)

	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) UploadProjectImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'file' is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot open uploaded file"})
		return
	}
	defer file.Close()

	output, err := h.uploadUseCase.Execute(c.Request.Context(), projectUC.UploadProjectImageInput{
		ProjectID: id,
		File:      file,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.console.Workspace.ReplaceProject(output.Project)

	c.JSON(http.StatusOK, ToProjectDTO(output.Project))
}

func saveProjectInput(req SaveProjectRequest) projectUC.SaveProjectInput {
	return projectUC.SaveProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		Tags:         project.SplitTags(req.Tags),
		URL:          req.URL,
		GithubURL:    req.GithubURL,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
		IsVisible:    req.IsVisible,
	}
}
