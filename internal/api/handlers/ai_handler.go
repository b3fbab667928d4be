package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobportal/internal/models"
	"github.com/yoockh/jobportal/internal/services"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AIHandler struct {
	svc services.AIService
}

func NewAIHandler(svc services.AIService) *AIHandler {
	return &AIHandler{svc: svc}
}

func (h *AIHandler) ResumeAnalysis(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	res, err := h.svc.AnalyzeResume(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type jobMatchRequest struct {
	JobID string `json:"jobId" binding:"required"`
}

func (h *AIHandler) JobMatch(c *gin.Context) {
	const op = "AIHandler.JobMatch"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req jobMatchRequest
	if !bindJSON(c, op, &req) {
		return
	}
	jobID, err := primitive.ObjectIDFromHex(req.JobID)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid jobId", err))
		return
	}

	res, err := h.svc.MatchJob(c.Request.Context(), userID, jobID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type jobDescriptionRequest struct {
	Title      string         `json:"title" binding:"required"`
	Skills     StringList     `json:"skills"`
	Experience string         `json:"experience"`
	JobType    models.JobType `json:"jobType"`
	Location   string         `json:"location"`
}

func (h *AIHandler) JobDescription(c *gin.Context) {
	var req jobDescriptionRequest
	if !bindJSON(c, "AIHandler.JobDescription", &req) {
		return
	}

	draft, err := h.svc.GenerateJobDescription(c.Request.Context(), services.JobDescriptionInput{
		Title:      req.Title,
		Skills:     req.Skills,
		Experience: req.Experience,
		JobType:    req.JobType,
		Location:   req.Location,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *AIHandler) Usage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	st, err := h.svc.Usage(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *AIHandler) History(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rows, err := h.svc.History(c.Request.Context(), userID, queryInt(c, "limit"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": rows, "count": len(rows)})
}
