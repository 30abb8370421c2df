package apperrors

import (
	"agilcurn/internal/util/logger"

	"github.com/gin-gonic/gin"
)

// Respond writes a domain error with its mapped status. Unexpected errors are
// logged with full detail and surface as a generic 500.
func Respond(ctx *gin.Context, err error) {
	if IsDomain(err) {
		ctx.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	logger.GetLogger().Error("unexpected error",
		"path", ctx.FullPath(),
		"error", err.Error())

	ctx.JSON(HTTPStatus(err), gin.H{"error": Internal().Message})
}
