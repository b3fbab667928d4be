package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobportal/internal/models"
	"github.com/yoockh/jobportal/internal/services"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

// Apply takes multipart: resume (pdf, required) and coverLetter.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	const op = "ApplicationHandler.Apply"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", op)
	if !ok {
		return
	}

	resume, closeResume, err := readUpload(c, op, "resume", pdfRule)
	defer closeResume()
	if err != nil {
		writeError(c, err)
		return
	}

	a, err := h.svc.Apply(c.Request.Context(), userID, jobID, c.PostForm("coverLetter"), resume)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "application submitted", "application": a})
}

func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rows, err := h.svc.MyApplications(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": rows, "count": len(rows)})
}

// EmployerApplicants lists applicants across the caller's jobs; ?jobId=
// narrows to one job.
func (h *ApplicationHandler) EmployerApplicants(c *gin.Context) {
	const op = "ApplicationHandler.EmployerApplicants"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var jobID primitive.ObjectID
	if raw := c.Query("jobId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid jobId", err))
			return
		}
		jobID = id
	}

	rows, err := h.svc.EmployerApplicants(c.Request.Context(), userID, jobID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applicants": rows, "count": len(rows)})
}

type updateStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,oneof=Applied Shortlisted Rejected Hired"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	const op = "ApplicationHandler.UpdateStatus"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	appID, ok := pathID(c, "applicationId", op)
	if !ok {
		return
	}
	var req updateStatusRequest
	if !bindJSON(c, op, &req) {
		return
	}

	a, err := h.svc.UpdateStatus(c.Request.Context(), userID, appID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application status updated", "application": a})
}
