package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	margindomain "github.com/rxledger/rxledger/internal/margin/domain"
	"github.com/shopspring/decimal"
)

type estimateMarginRequest struct {
	Items []margindomain.BasketLine `json:"items"`
}

func (s *Server) GetSaleMargin(c *gin.Context) {
	saleID, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_sale", "invalid sale id"))
		return
	}

	resp, err := s.marginSvc.MarginForSale(c.Request.Context(), saleID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"sale_id": resp.SaleID,
		"margin":  s.display(resp.Margin),
		"revenue": s.display(resp.Revenue),
		"cost":    s.display(resp.Cost),
	}})
}

func (s *Server) GetStoreMargin(c *gin.Context) {
	storeID, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_store", "invalid store id"))
		return
	}

	from, _, err := parseDate(c.Query("start_date"))
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_date_range", "invalid start_date"))
		return
	}
	to, toDateOnly, err := parseDate(c.Query("end_date"))
	if err != nil {
		AbortWithError(c, newValidationError("end_date", "invalid_date_range", "invalid end_date"))
		return
	}
	// A date-only end bound means "through the end of that day". An explicit
	// RFC3339 midnight stays a midnight.
	if toDateOnly {
		to = endOfDay(to)
	}

	resp, err := s.marginSvc.AggregatedMargin(c.Request.Context(), storeID, from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": s.aggregatePayload(resp)})
}

func (s *Server) EstimateMargin(c *gin.Context) {
	var req estimateMarginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.marginSvc.EstimateBasketMargin(c.Request.Context(), req.Items)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": s.aggregatePayload(resp)})
}

func (s *Server) aggregatePayload(agg *margindomain.AggregatedMargin) gin.H {
	return gin.H{
		"total_margin":       s.display(agg.TotalMargin),
		"total_revenue":      s.display(agg.TotalRevenue),
		"total_cost":         s.display(agg.TotalCost),
		"net_margin_percent": s.display(agg.NetMarginPercent),
	}
}

// display rounds a full-precision decimal for presentation only.
func (s *Server) display(d decimal.Decimal) decimal.Decimal {
	return d.Round(s.reporting.Get().DisplayDecimalPlaces)
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

// parseDate accepts RFC3339 timestamps and plain dates; empty means unset.
// dateOnly reports that the input carried no time component.
func parseDate(raw string) (t time.Time, dateOnly bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, nil
	}
	t, err = time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), true, nil
}

func endOfDay(t time.Time) time.Time {
	return t.Add(24*time.Hour - time.Nanosecond)
}
