package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ananya868/aave-credit-scoring/internal/domain"
	"github.com/ananya868/aave-credit-scoring/internal/logger"
	"github.com/ananya868/aave-credit-scoring/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type stubScoreRepository struct {
	rows []domain.ScoreRow
}

func (s stubScoreRepository) Replace(rows []domain.ScoreRow) error { return nil }

func (s stubScoreRepository) Get(wallet string) (*domain.ScoreRow, error) {
	for _, row := range s.rows {
		if row.Wallet == strings.ToLower(wallet) {
			out := row
			return &out, nil
		}
	}
	return nil, repository.ErrScoreNotFound
}

func (s stubScoreRepository) List() ([]domain.ScoreRow, error) { return s.rows, nil }

func newTestRouter(handler *ApiHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/scores/:address", handler.getWalletScore)
	return router
}

func Test_getWalletScore(t *testing.T) {
	handler := &ApiHandler{
		ScoreRepository: stubScoreRepository{
			rows: []domain.ScoreRow{
				{Wallet: "0xabc", CreditScore: 777, ClusterLabel: 2},
			},
		},
		Logger: logger.New(),
	}
	router := newTestRouter(handler)

	t.Run("returns the score for a known wallet", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/scores/0xABC", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, 200, w.Code)

		var resp walletScoreResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, "0xabc", resp.UserWallet)
		require.Equal(t, 777, resp.CreditScore)
		require.Equal(t, 2, resp.ClusterLabel)
	})

	t.Run("unknown wallet is a 404, not a failure", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/scores/0xdoesnotexist", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, 404, w.Code)
	})
}
