package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobportal/internal/services"
)

type BookmarkHandler struct {
	svc services.BookmarkService
}

func NewBookmarkHandler(svc services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{svc: svc}
}

func (h *BookmarkHandler) Add(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", "BookmarkHandler.Add")
	if !ok {
		return
	}

	b, err := h.svc.Add(c.Request.Context(), userID, jobID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "job bookmarked", "bookmark": b})
}

func (h *BookmarkHandler) Remove(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", "BookmarkHandler.Remove")
	if !ok {
		return
	}

	if err := h.svc.Remove(c.Request.Context(), userID, jobID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bookmark removed"})
}

func (h *BookmarkHandler) Check(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", "BookmarkHandler.Check")
	if !ok {
		return
	}

	found, err := h.svc.Check(c.Request.Context(), userID, jobID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isBookmarked": found})
}

func (h *BookmarkHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rows, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": rows, "count": len(rows)})
}
