package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobportal/internal/models"
	"github.com/yoockh/jobportal/internal/services"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

type jobRequest struct {
	Title            *string         `json:"title"`
	Description      *string         `json:"description"`
	Requirements     *StringList     `json:"requirements"`
	Responsibilities *StringList     `json:"responsibilities"`
	Skills           *StringList     `json:"skills"`
	JobType          *models.JobType `json:"jobType"`
	Location         *string         `json:"location"`
	Salary           *string         `json:"salary"`
	Experience       *string         `json:"experience"`
	Openings         *int            `json:"openings"`
	IsActive         *bool           `json:"isActive"`
}

func (r jobRequest) input() services.JobInput {
	return services.JobInput{
		Title:            r.Title,
		Description:      r.Description,
		Requirements:     r.Requirements.Slice(),
		Responsibilities: r.Responsibilities.Slice(),
		Skills:           r.Skills.Slice(),
		JobType:          r.JobType,
		Location:         r.Location,
		Salary:           r.Salary,
		Experience:       r.Experience,
		Openings:         r.Openings,
		IsActive:         r.IsActive,
	}
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

func (h *JobHandler) List(c *gin.Context) {
	f := models.JobFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		JobType:  models.JobType(c.Query("jobType")),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}
	if s := c.Query("skills"); s != "" {
		f.Skills = ParseList(s)
	}

	page, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *JobHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "jobId", "JobHandler.Get")
	if !ok {
		return
	}

	j, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req jobRequest
	if !bindJSON(c, "JobHandler.Create", &req) {
		return
	}

	j, err := h.svc.Create(c.Request.Context(), userID, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "job created", "job": j})
}

func (h *JobHandler) Update(c *gin.Context) {
	const op = "JobHandler.Update"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", op)
	if !ok {
		return
	}
	var req jobRequest
	if !bindJSON(c, op, &req) {
		return
	}

	j, err := h.svc.Update(c.Request.Context(), userID, jobID, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job updated", "job": j})
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", "JobHandler.Delete")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, jobID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job deleted"})
}

func (h *JobHandler) Toggle(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId", "JobHandler.Toggle")
	if !ok {
		return
	}

	j, err := h.svc.Toggle(c.Request.Context(), userID, jobID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job status updated", "isActive": j.IsActive, "job": j})
}

func (h *JobHandler) MyJobs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	jobs, err := h.svc.MyJobs(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}
