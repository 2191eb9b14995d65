package api

import (
	"fmt"
	"sync"

	"github.com/ananya868/aave-credit-scoring/internal/app"
	"github.com/ananya868/aave-credit-scoring/internal/repository"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ApiHandler struct {
	PipelineHandler app.PipelineHandler
	ScoreRepository repository.ScoreRepository
	Logger          *zap.SugaredLogger

	// serializes pipeline runs: at most one execution in flight per output
	// target, so a finished run is never clobbered mid-write by a second one
	runMu sync.Mutex
}

func (m *ApiHandler) StartApi(port int) error {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to the wallet credit scoring api"})
	})
	router.POST("/scores/generate", m.generateScores)
	router.GET("/scores/:address", m.getWalletScore)

	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	fmt.Println(err.Error())
	c.AbortWithStatusJSON(500, gin.H{
		"error": err.Error(),
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	fmt.Println(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}
