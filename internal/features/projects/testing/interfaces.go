package projects_testing

import (
	"github.com/gin-gonic/gin"
)

type ControllerInterface interface {
	RegisterProtectedRoutes(router gin.IRoutes)
}
