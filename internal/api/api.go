// Package api holds the gin handlers of the foodgram HTTP API.
package api

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/lenarsag/foodgram/backend/internal/pagination"
	"github.com/lenarsag/foodgram/backend/internal/service"
)

// Guards are the middlewares handlers attach to individual routes.
type Guards struct {
	// Required rejects anonymous requests.
	Required gin.HandlerFunc
	// Optional identifies the caller when a token is sent.
	Optional gin.HandlerFunc
	// RecipeCreation throttles recipe creation; runs after Required.
	RecipeCreation gin.HandlerFunc
}

func (g Guards) recipeCreation() gin.HandlerFunc {
	if g.RecipeCreation == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return g.RecipeCreation
}

func badRequest(format string, args ...interface{}) error {
	return &service.Error{Kind: service.ErrValidation, Message: fmt.Sprintf(format, args...)}
}

var errNotFound = &service.Error{Kind: service.ErrNotFound, Message: "Not found"}

// bindJSON decodes the body into dst and reports binding failures as
// validation errors. It returns false when the handler should stop.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(badRequest("%s", bindingMessage(err)))
		return false
	}
	return true
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fieldMessage(fe)
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	// drop the request type name from "CreateRecipeRequest.ingredients[0].amount"
	_, field, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		field = fe.Field()
	}
	isList := fe.Kind() == reflect.Slice

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if isList {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "unique":
		return field + " must not contain duplicates"
	case "email":
		return field + " must be a valid email address"
	case "username":
		return field + " may contain only letters, digits and @/./+/-/_"
	case "password":
		return field + " must be at least 8 characters with upper and lower case letters, a digit and one of @$!%*?&"
	default:
		return field + " is invalid"
	}
}

// parseID reads a positive integer path parameter. Anything else is a 404,
// the same as an unknown id.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		_ = c.Error(errNotFound)
		return 0, false
	}
	return uint(id), true
}

// pageParams reads page and size from the query string.
func pageParams(c *gin.Context, pager *pagination.Pager) (pagination.Params, bool) {
	params, err := pager.Parse(c.Query("page"), c.Query("size"))
	if err != nil {
		_ = c.Error(err)
		return pagination.Params{}, false
	}
	return params, true
}

// recipeLimit reads the optional recipe_limits query parameter.
func recipeLimit(c *gin.Context) (*int, bool) {
	raw := c.Query("recipe_limits")
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		_ = c.Error(badRequest("recipe_limits must be an integer"))
		return nil, false
	}
	return &n, true
}
