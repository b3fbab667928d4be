package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobportal/internal/services"
	"github.com/yoockh/jobportal/internal/utils"
)

type JobSeekerHandler struct {
	auth   services.AuthService
	svc    services.JobSeekerService
	cookie SessionCookie
}

func NewJobSeekerHandler(authSvc services.AuthService, svc services.JobSeekerService, cookie SessionCookie) *JobSeekerHandler {
	return &JobSeekerHandler{auth: authSvc, svc: svc, cookie: cookie}
}

type registerJobSeekerRequest struct {
	Name     string     `json:"name" binding:"required"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=6"`
	Bio      string     `json:"bio"`
	Skills   StringList `json:"skills"`
}

func (h *JobSeekerHandler) Register(c *gin.Context) {
	var req registerJobSeekerRequest
	if !bindJSON(c, "JobSeekerHandler.Register", &req) {
		return
	}

	sess, err := h.auth.RegisterJobSeeker(c.Request.Context(), services.RegisterJobSeekerInput{
		Credentials: services.Credentials{Name: req.Name, Email: req.Email, Password: req.Password},
		Bio:         req.Bio,
		Skills:      req.Skills,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.cookie.set(c, sess.Token)
	c.JSON(http.StatusCreated, gin.H{"message": "jobseeker registered", "user": sess.User})
}

func (h *JobSeekerHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.svc.Me(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type updateJobSeekerRequest struct {
	Bio        *string              `json:"bio"`
	Skills     *StringList          `json:"skills"`
	Education  *[]educationRequest  `json:"education"`
	Experience *[]experienceRequest `json:"experience"`
}

// Update accepts JSON, or multipart with profileImage and resume files and
// education/experience sent as JSON strings.
func (h *JobSeekerHandler) Update(c *gin.Context) {
	const op = "JobSeekerHandler.Update"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in services.UpdateJobSeekerInput
	if isMultipart(c) {
		in.Bio = formString(c, "bio")
		in.Skills = formList(c, "skills")

		var edu []educationRequest
		found, err := formJSON(c, "education", &edu)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, err.Error(), err))
			return
		}
		if found {
			v := toEducation(edu)
			in.Education = &v
		}

		var exp []experienceRequest
		found, err = formJSON(c, "experience", &exp)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, err.Error(), err))
			return
		}
		if found {
			v := toExperience(exp)
			in.Experience = &v
		}

		img, closeImg, err := readUpload(c, op, "profileImage", imageRule)
		defer closeImg()
		if err != nil {
			writeError(c, err)
			return
		}
		resume, closeResume, err := readUpload(c, op, "resume", pdfRule)
		defer closeResume()
		if err != nil {
			writeError(c, err)
			return
		}
		in.ProfileImage, in.Resume = img, resume
	} else {
		var req updateJobSeekerRequest
		if !bindJSON(c, op, &req) {
			return
		}
		in.Bio = req.Bio
		in.Skills = req.Skills.Slice()
		if req.Education != nil {
			v := toEducation(*req.Education)
			in.Education = &v
		}
		if req.Experience != nil {
			v := toExperience(*req.Experience)
			in.Experience = &v
		}
	}

	p, err := h.svc.UpdateProfile(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated", "jobseeker": p})
}
