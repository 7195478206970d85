package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	batchdomain "github.com/rxledger/rxledger/internal/batch/domain"
)

func (s *Server) CreateBatch(c *gin.Context) {
	var req batchdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.batchSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBatches(c *gin.Context) {
	storeID, err := parseID(c.Query("store_id"))
	if err != nil {
		AbortWithError(c, newValidationError("store_id", "invalid_store", "invalid store id"))
		return
	}

	resp, err := s.batchSvc.List(c.Request.Context(), storeID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
