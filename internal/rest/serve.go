// Package rest exposes the denoising tools over HTTP/JSON.
package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ironsheep/despeckle-mcp/internal/raster"
	"github.com/ironsheep/despeckle-mcp/internal/server"
)

// Router returns the gin engine serving the API under /api/v1.
func Router(tb *server.Toolbox) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET("/ping", getPing)
			v1.POST("/load", postLoad(tb))
			v1.POST("/despeckle", postDespeckle(tb))
			v1.POST("/clean", postClean(tb))
			v1.POST("/smooth", postSmooth(tb))
			v1.POST("/diff", postDiff(tb))
			v1.POST("/noise", postNoise(tb))
			v1.POST("/unload", postUnload(tb))
		}
	}
	return r
}

// Serve listens on addr until the server fails.
func Serve(addr string, tb *server.Toolbox) error {
	return Router(tb).Run(addr)
}

func getPing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

// status maps a tool error to an HTTP status. Parameter and shape errors are
// the caller's fault; anything else means the image could not be read.
func status(err error) int {
	switch {
	case errors.Is(err, raster.ErrInvalidParameter), errors.Is(err, raster.ErrShape):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

// respond writes result, or the error with its mapped status.
func respond(c *gin.Context, result interface{}, err error) {
	if err != nil {
		c.JSON(status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// bind decodes the JSON body into args and writes a 400 on failure.
func bind(c *gin.Context, args interface{}) bool {
	if err := c.ShouldBindJSON(args); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

type postLoadArgs struct {
	Path string `json:"path"`
}

func postLoad(tb *server.Toolbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		var args postLoadArgs
		if !bind(c, &args) {
			return
		}
		res, err := tb.Load(args.Path)
		respond(c, res, err)
	}
}

func postUnload(tb *server.Toolbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		var args postLoadArgs
		if !bind(c, &args) {
			return
		}
		res, err := tb.Unload(args.Path)
		respond(c, res, err)
	}
}

func postDespeckle(tb *server.Toolbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		var args server.DespeckleArgs
		if !bind(c, &args) {
			return
		}
		res, err := tb.Despeckle(args)
		respond(c, res, err)
	}
}

func postClean(tb *server.Toolbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		var args server.CleanArgs
		if !bind(c, &args) {
			return
		}
		res, err := tb.Clean(args)
		respond(c, res, err)
	}
}

func postSmooth(tb *server.Toolbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		var args server.SmoothArgs
		if !bind(c, &args) {
			return
		}
		res, err := tb.Smooth(args)
		respond(c, res, err)
	}
}

func postDiff(tb *server.Toolbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		var args server.CleanArgs
		if !bind(c, &args) {
			return
		}
		res, err := tb.NoiseDiff(args)
		respond(c, res, err)
	}
}

func postNoise(tb *server.Toolbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		var args server.NoiseArgs
		if !bind(c, &args) {
			return
		}
		res, err := tb.AddNoise(args)
		respond(c, res, err)
	}
}
