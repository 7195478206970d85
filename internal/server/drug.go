package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	drugdomain "github.com/rxledger/rxledger/internal/drug/domain"
)

func (s *Server) CreateDrug(c *gin.Context) {
	var req drugdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.drugSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListDrugs(c *gin.Context) {
	storeID, err := parseID(c.Query("store_id"))
	if err != nil {
		AbortWithError(c, newValidationError("store_id", "invalid_store", "invalid store id"))
		return
	}

	resp, err := s.drugSvc.List(c.Request.Context(), storeID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
