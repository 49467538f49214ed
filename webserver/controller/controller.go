// Package controller implements the read-only ops API: queue inspection and
// a request feed. User identities are anonymized before leaving the process.
package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/snakecharmers/boabot/common"
	"github.com/snakecharmers/boabot/ticket"
)

type Controller struct {
	registry *ticket.Registry
}

func New(registry *ticket.Registry) *Controller {
	return &Controller{registry: registry}
}

func (ctl *Controller) GetHealth(c *gin.Context) {
	common.ResponseSuccess(c, gin.H{"Status": "ok"})
}
