package api

import (
	"context"
	"errors"

	"github.com/ananya868/aave-credit-scoring/internal/logger"
	"github.com/gin-gonic/gin"
)

type generateScoresResponse struct {
	Message string `json:"message"`
}

// generateScores triggers a full pipeline run in the background and
// returns immediately. A second trigger while a run is in flight gets a
// 409 instead of a second run.
func (m *ApiHandler) generateScores(c *gin.Context) {
	if !m.runMu.TryLock() {
		returnErrorJsonCode(errors.New("a scoring run is already in progress"), c, 409)
		return
	}

	go func() {
		defer m.runMu.Unlock()

		ctx := context.WithValue(context.Background(), logger.ContextKey, m.Logger)
		if _, err := m.PipelineHandler.Run(ctx); err != nil {
			m.Logger.Errorw("background scoring run failed", "error", err)
		}
	}()

	c.JSON(202, generateScoresResponse{
		Message: "credit scoring pipeline has been triggered in the background",
	})
}
