package router

import (
	"net/http"

	"huffpress/internal/handler"

	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	CompressHandler *handler.CompressHandler
	MaxUploadBytes  int64
}

func Register(r *gin.Engine, d Dependencies) {
	if d.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = d.MaxUploadBytes
		r.Use(func(c *gin.Context) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, d.MaxUploadBytes)
			c.Next()
		})
	}

	// 공용 라우트
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// v1 그룹
	v1 := r.Group("/api/v1")
	{
		v1.POST("/compress", d.CompressHandler.Compress)
		v1.POST("/decompress", d.CompressHandler.Decompress)
		v1.GET("/download/:name", d.CompressHandler.Download)

		jobs := v1.Group("/jobs")
		{
			jobs.GET("", d.CompressHandler.ListJobs)
			jobs.GET("/:id", d.CompressHandler.GetJob)
		}
	}
}
