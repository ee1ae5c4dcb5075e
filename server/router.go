package server

import (
	"time"

	httpHandler "media-gateway/interfaces/http"
	"media-gateway/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// InitiateRouter builds the gin engine and registers the media routes.
func InitiateRouter(mediaHandler httpHandler.IMediaHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/", mediaHandler.Home)
	router.GET("/download", mediaHandler.Download)

	api := router.Group("api")
	{
		api.GET("/fast-meta", mediaHandler.FastMeta)
		api.GET("/meta", mediaHandler.Meta)
		api.GET("/all", mediaHandler.All)
		api.GET("/channel", mediaHandler.Channel)
		api.GET("/playlist", mediaHandler.Playlist)

		api.GET("/instagram", mediaHandler.Instagram)
		api.GET("/twitter", mediaHandler.Twitter)
		api.GET("/tiktok", mediaHandler.TikTok)
		api.GET("/facebook", mediaHandler.Facebook)

		api.GET("/audio", mediaHandler.Audio)
		api.GET("/video", mediaHandler.Video)
	}

	return router
}
