package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"

	"github.com/snakecharmers/boabot/common"
)

// GetFeed renders the open requests as a subscribable feed. Formats: rss
// (default), atom or json.
func (ctl *Controller) GetFeed(c *gin.Context) {
	now := time.Now()
	feed := feeds.Feed{
		Title:       "BOA request queue",
		Link:        &feeds.Link{Href: "/api/queue"},
		Description: "Open BOA requests in queue order",
		Created:     now,
	}
	for i, t := range ctl.registry.Open() {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:      t.ID,
			Title:   fmt.Sprintf("BOA request #%d", i+1),
			Link:    &feeds.Link{Href: "/api/queue"},
			Author:  &feeds.Author{Name: common.StringToUUID5(t.UserID)},
			Created: time.Unix(t.CreatedAt, 0),
		})
	}
	var (
		str string
		err error
	)
	switch strings.ToLower(c.DefaultQuery("format", "rss")) {
	case "rss":
		str, err = feed.ToRss()
		c.Header("Content-Type", "application/rss+xml")
	case "atom":
		str, err = feed.ToAtom()
		c.Header("Content-Type", "application/atom+xml")
	case "json":
		str, err = feed.ToJSON()
		c.Header("Content-Type", "application/json")
	default:
		common.ResponseBadRequestError(c)
		return
	}
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	_, _ = c.Writer.WriteString(str)
}
