package controller

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/snakecharmers/boabot/common"
)

type QueueItem struct {
	Requester string
	CreatedAt time.Time
	Position  int
	Answered  int
}

// GetQueue lists open tickets in queue order.
func (ctl *Controller) GetQueue(c *gin.Context) {
	open := ctl.registry.Open()
	items := make([]QueueItem, 0, len(open))
	for i, t := range open {
		items = append(items, QueueItem{
			Requester: common.StringToUUID5(t.UserID),
			CreatedAt: time.Unix(t.CreatedAt, 0),
			Position:  i,
			Answered:  len(t.Answers),
		})
	}
	common.ResponseSuccess(c, gin.H{"Queue": items})
}
