package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	postUC "github.com/minhvu/folio/internal/application/usecase/post"
	"github.com/minhvu/folio/internal/cms"
)

type PostHandler struct {
	createPostUseCase *postUC.CreatePostUseCase
	updatePostUseCase *postUC.UpdatePostUseCase
	deletePostUseCase *postUC.DeletePostUseCase
	console           *cms.Console
}

func NewPostHandler(
	createUC *postUC.CreatePostUseCase,
	updateUC *postUC.UpdatePostUseCase,
	deleteUC *postUC.DeletePostUseCase,
	console *cms.Console,
) *PostHandler {
	return &PostHandler{
		createPostUseCase: createUC,
		updatePostUseCase: updateUC,
		deletePostUseCase: deleteUC,
		console:           console,
	}
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	if err := h.console.EnsureLoaded(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPostSummaryDTOs(h.console.Workspace.Posts()))
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req SavePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	output, err := h.createPostUseCase.Execute(c.Request.Context(), postUC.CreatePostInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Content:     req.Content,
		ReadTime:    req.ReadTime,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.console.Workspace.AddPost(output.Post)

	c.JSON(http.StatusCreated, ToPostDTO(output.Post))
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post ID"})
		return
	}

	var req SavePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	output, err := h.updatePostUseCase.Execute(c.Request.Context(), postUC.UpdatePostInput{
		ID:          id,
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Content:     req.Content,
		ReadTime:    req.ReadTime,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.console.Workspace.ReplacePost(output.Post)

	c.JSON(http.StatusOK, ToPostDTO(output.Post))
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post ID"})
		return
	}

	if err := h.deletePostUseCase.Execute(c.Request.Context(), postUC.DeletePostInput{ID: id}); err != nil {
		c.Error(err)
		return
	}

	h.console.Workspace.RemovePost(id)

	c.Status(http.StatusNoContent)
}
