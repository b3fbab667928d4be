package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobportal/internal/services"
)

type EmployerHandler struct {
	auth   services.AuthService
	svc    services.EmployerService
	cookie SessionCookie
}

func NewEmployerHandler(authSvc services.AuthService, svc services.EmployerService, cookie SessionCookie) *EmployerHandler {
	return &EmployerHandler{auth: authSvc, svc: svc, cookie: cookie}
}

type registerEmployerRequest struct {
	Name               string `json:"name" form:"name" binding:"required"`
	Email              string `json:"email" form:"email" binding:"required,email"`
	Password           string `json:"password" form:"password" binding:"required,min=6"`
	CompanyName        string `json:"companyName" form:"companyName" binding:"required"`
	CompanyWebsite     string `json:"companyWebsite" form:"companyWebsite"`
	CompanyDescription string `json:"companyDescription" form:"companyDescription"`
	Location           string `json:"location" form:"location"`
	Industry           string `json:"industry" form:"industry"`
}

// Register accepts JSON, or multipart with an optional companyLogo file.
func (h *EmployerHandler) Register(c *gin.Context) {
	const op = "EmployerHandler.Register"

	var (
		req registerEmployerRequest
		in  services.RegisterEmployerInput
	)
	if isMultipart(c) {
		if !bindForm(c, op, &req) {
			return
		}
		logo, closeLogo, err := readUpload(c, op, "companyLogo", imageRule)
		defer closeLogo()
		if err != nil {
			writeError(c, err)
			return
		}
		in.Logo = logo
	} else if !bindJSON(c, op, &req) {
		return
	}
	in.Credentials = services.Credentials{Name: req.Name, Email: req.Email, Password: req.Password}
	in.CompanyName = req.CompanyName
	in.CompanyWebsite = req.CompanyWebsite
	in.CompanyDescription = req.CompanyDescription
	in.Location = req.Location
	in.Industry = req.Industry

	sess, err := h.auth.RegisterEmployer(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	h.cookie.set(c, sess.Token)
	c.JSON(http.StatusCreated, gin.H{"message": "employer registered", "user": sess.User})
}

func (h *EmployerHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	e, err := h.svc.Me(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

type updateEmployerRequest struct {
	CompanyName        *string `json:"companyName"`
	CompanyWebsite     *string `json:"companyWebsite"`
	CompanyDescription *string `json:"companyDescription"`
	Location           *string `json:"location"`
	Industry           *string `json:"industry"`
}

func (h *EmployerHandler) Update(c *gin.Context) {
	const op = "EmployerHandler.Update"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in services.UpdateEmployerInput
	if isMultipart(c) {
		in.CompanyName = formString(c, "companyName")
		in.CompanyWebsite = formString(c, "companyWebsite")
		in.CompanyDescription = formString(c, "companyDescription")
		in.Location = formString(c, "location")
		in.Industry = formString(c, "industry")

		logo, closeLogo, err := readUpload(c, op, "companyLogo", imageRule)
		defer closeLogo()
		if err != nil {
			writeError(c, err)
			return
		}
		in.Logo = logo
	} else {
		var req updateEmployerRequest
		if !bindJSON(c, op, &req) {
			return
		}
		in = services.UpdateEmployerInput{
			CompanyName:        req.CompanyName,
			CompanyWebsite:     req.CompanyWebsite,
			CompanyDescription: req.CompanyDescription,
			Location:           req.Location,
			Industry:           req.Industry,
		}
	}

	e, err := h.svc.Update(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "company profile updated", "employer": e})
}

func (h *EmployerHandler) Public(c *gin.Context) {
	id, ok := pathID(c, "companyId", "EmployerHandler.Public")
	if !ok {
		return
	}

	page, err := h.svc.Public(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
