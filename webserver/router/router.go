package router

import (
	"github.com/gin-gonic/gin"

	"github.com/snakecharmers/boabot/ticket"
	"github.com/snakecharmers/boabot/webserver/controller"
)

func New(registry *ticket.Registry) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	ctl := controller.New(registry)
	api := engine.Group("/api")
	{
		api.GET("health", ctl.GetHealth)
		api.GET("queue", ctl.GetQueue)
		api.GET("feed", ctl.GetFeed)
	}
	return engine
}

func Run(registry *ticket.Registry, address string) error {
	return New(registry).Run(address)
}
