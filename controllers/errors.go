package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldError is one entry of a validation failure breakdown.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func init() {
	// Report fields by their wire names (json for bodies, form for queries)
	// rather than Go struct names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	}
}

// validationFailed renders a 400 with a field-level breakdown of err.
func validationFailed(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, len(verrs))
		for i, fe := range verrs {
			fields[i] = FieldError{Field: fe.Field(), Message: messageForTag(fe)}
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "error": err.Error()})
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be a positive integer", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// invalidParam renders the 400 used when a path or query id is not a valid
// object id.
func invalidParam(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Validation failed",
		"errors":  []FieldError{{Field: field, Message: message}},
	})
}

// callerID extracts the authenticated user id set by the auth middleware.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	uid := c.GetString("uid")
	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access Denied"})
		return primitive.NilObjectID, false
	}
	return id, true
}
