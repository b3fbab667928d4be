package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yoockh/jobportal/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
	// set on QUOTA_EXCEEDED only
	Feature string `json:"feature,omitempty"`
	Window  string `json:"window,omitempty"`
}

// Validation messages name fields by their json (or form) key.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	}
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		body := APIError{
			Code:    ae.Code,
			Message: ae.Message,
		}
		var qe *utils.QuotaError
		if errors.As(err, &qe) {
			body.Feature, body.Window = qe.Feature, qe.Window
		}
		if status >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		c.JSON(status, body)
		return
	}

	_ = c.Error(err)
	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

func requireUserID(c *gin.Context) (primitive.ObjectID, bool) {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			if id, err := primitive.ObjectIDFromHex(s); err == nil {
				return id, true
			}
		}
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return primitive.NilObjectID, false
}

// pathID parses the named route param as an ObjectID.
func pathID(c *gin.Context, name, op string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid "+name, err))
		return primitive.NilObjectID, false
	}
	return id, true
}

func bindJSON(c *gin.Context, op string, dst any) bool {
	return bindWith(c, op, dst, binding.JSON)
}

// bindForm binds the text fields of a multipart request.
func bindForm(c *gin.Context, op string, dst any) bool {
	return bindWith(c, op, dst, binding.FormMultipart)
}

func bindWith(c *gin.Context, op string, dst any, b binding.Binding) bool {
	if err := c.ShouldBindWith(dst, b); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, bindMessage(err), err))
		return false
	}
	return true
}

func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "email":
			return fe.Field() + " must be a valid email address"
		case "min":
			return fe.Field() + " must be at least " + fe.Param() + " characters"
		case "oneof":
			return fe.Field() + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
		default:
			return fe.Field() + " is invalid"
		}
	}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return "malformed JSON body"
	}
	return "invalid request body"
}
