package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mosh-dvd/language-learning-platform-sub002/services"
)

// respondServiceError maps the services package's typed errors onto HTTP
// statuses; anything untyped is a 500.
func respondServiceError(c *gin.Context, err error) {
	c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
}

// parseIDParam reads a uuid path parameter, answering 400 itself on bad
// input. The bool tells the handler whether to continue.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID reads the authenticated user id the auth middleware stored.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userUUID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "cannot determine user"})
		return uuid.Nil, false
	}
	return userUUID, true
}
