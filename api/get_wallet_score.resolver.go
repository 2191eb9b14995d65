package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ananya868/aave-credit-scoring/internal/repository"
	"github.com/gin-gonic/gin"
)

type walletScoreResponse struct {
	UserWallet   string `json:"userWallet"`
	CreditScore  int    `json:"creditScore"`
	ClusterLabel int    `json:"clusterLabel"`
}

// getWalletScore looks up one wallet in the most recent run's output. An
// unknown wallet is a 404, never a pipeline failure.
func (m *ApiHandler) getWalletScore(c *gin.Context) {
	address := strings.ToLower(c.Param("address"))
	if address == "" {
		returnErrorJsonCode(errors.New("missing wallet address"), c, 400)
		return
	}

	row, err := m.ScoreRepository.Get(address)
	if errors.Is(err, repository.ErrScoreNotFound) {
		returnErrorJsonCode(fmt.Errorf("wallet %s not found in latest scoring run", address), c, 404)
		return
	} else if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, walletScoreResponse{
		UserWallet:   row.Wallet,
		CreditScore:  row.CreditScore,
		ClusterLabel: row.ClusterLabel,
	})
}
