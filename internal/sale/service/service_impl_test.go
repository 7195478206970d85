package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	margindomain "github.com/rxledger/rxledger/internal/margin/domain"
	saledomain "github.com/rxledger/rxledger/internal/sale/domain"
	salerepository "github.com/rxledger/rxledger/internal/sale/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockMarginService struct {
	mock.Mock
}

func (m *mockMarginService) RecordSaleMargin(ctx context.Context, storeID, saleID snowflake.ID) margindomain.RecordingResult {
	args := m.Called(ctx, storeID, saleID)
	return args.Get(0).(margindomain.RecordingResult)
}

func (m *mockMarginService) MarginForSale(ctx context.Context, saleID snowflake.ID) (*margindomain.SaleMargin, error) {
	args := m.Called(ctx, saleID)
	return args.Get(0).(*margindomain.SaleMargin), args.Error(1)
}

func (m *mockMarginService) AggregatedMargin(ctx context.Context, storeID snowflake.ID, from, to time.Time) (*margindomain.AggregatedMargin, error) {
	args := m.Called(ctx, storeID, from, to)
	return args.Get(0).(*margindomain.AggregatedMargin), args.Error(1)
}

func (m *mockMarginService) EstimateBasketMargin(ctx context.Context, lines []margindomain.BasketLine) (*margindomain.AggregatedMargin, error) {
	args := m.Called(ctx, lines)
	return args.Get(0).(*margindomain.AggregatedMargin), args.Error(1)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(t *testing.T) (*Service, *mockMarginService, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&saledomain.Sale{}, &saledomain.SaleItem{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	margin := &mockMarginService{}
	svc := New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Repo:   salerepository.Provide(),
		Margin: margin,
	}).(*Service)

	return svc, margin, node
}

func TestCreate_ComputesTaxInclusiveTotals(t *testing.T) {
	svc, _, node := newTestService(t)
	storeID := node.Generate()
	batchID := node.Generate()

	// 22.4 per tablet, 10 tablets, 12% GST → gross 224, taxable 200, tax 24.
	sale, err := svc.Create(context.Background(), saledomain.CreateRequest{
		StoreID: storeID,
		Items: []saledomain.CreateItemRequest{{
			DrugID:    node.Generate(),
			BatchID:   &batchID,
			Quantity:  dec("10"),
			IsPartial: true,
			UnitPrice: dec("22.4"),
			GSTRate:   dec("12"),
		}},
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)

	item := sale.Items[0]
	assert.True(t, item.TotalAmount.Equal(dec("224")), "gross %s", item.TotalAmount)
	assert.True(t, item.TaxableAmount.Equal(dec("200")), "taxable %s", item.TaxableAmount)
	assert.True(t, item.CGSTAmount.Equal(dec("12")), "cgst %s", item.CGSTAmount)
	assert.True(t, item.SGSTAmount.Equal(dec("12")), "sgst %s", item.SGSTAmount)
	assert.True(t, item.IGSTAmount.IsZero())

	assert.Equal(t, saledomain.SaleStatusDraft, sale.Status)
	assert.True(t, sale.TotalAmount.Equal(dec("224")))
	assert.True(t, sale.TaxAmount.Equal(dec("24")))
}

func TestCreate_InterStateUsesIGST(t *testing.T) {
	svc, _, node := newTestService(t)

	sale, err := svc.Create(context.Background(), saledomain.CreateRequest{
		StoreID:    node.Generate(),
		InterState: true,
		Items: []saledomain.CreateItemRequest{{
			DrugID:    node.Generate(),
			Quantity:  dec("1"),
			UnitPrice: dec("112"),
			GSTRate:   dec("12"),
		}},
	})
	require.NoError(t, err)

	item := sale.Items[0]
	assert.True(t, item.IGSTAmount.Equal(dec("12")), "igst %s", item.IGSTAmount)
	assert.True(t, item.CGSTAmount.IsZero())
	assert.True(t, item.SGSTAmount.IsZero())
}

func TestCreate_DiscountClampsGrossAtZero(t *testing.T) {
	svc, _, node := newTestService(t)

	sale, err := svc.Create(context.Background(), saledomain.CreateRequest{
		StoreID: node.Generate(),
		Items: []saledomain.CreateItemRequest{{
			DrugID:    node.Generate(),
			Quantity:  dec("1"),
			UnitPrice: dec("50"),
			Discount:  dec("80"), // over-discounted
			GSTRate:   dec("12"),
		}},
	})
	require.NoError(t, err)

	item := sale.Items[0]
	assert.True(t, item.TotalAmount.IsZero())
	assert.True(t, item.TaxableAmount.IsZero())
	assert.True(t, item.TotalTax().IsZero())
}

func TestCreate_RejectsMalformedInput(t *testing.T) {
	svc, _, node := newTestService(t)
	storeID := node.Generate()

	_, err := svc.Create(context.Background(), saledomain.CreateRequest{StoreID: 0})
	assert.ErrorIs(t, err, saledomain.ErrInvalidStore)

	_, err = svc.Create(context.Background(), saledomain.CreateRequest{StoreID: storeID})
	assert.ErrorIs(t, err, saledomain.ErrNoItems)

	_, err = svc.Create(context.Background(), saledomain.CreateRequest{
		StoreID: storeID,
		Items:   []saledomain.CreateItemRequest{{DrugID: node.Generate(), Quantity: dec("0"), UnitPrice: dec("10")}},
	})
	assert.ErrorIs(t, err, saledomain.ErrInvalidQuantity)

	_, err = svc.Create(context.Background(), saledomain.CreateRequest{
		StoreID: storeID,
		Items:   []saledomain.CreateItemRequest{{DrugID: node.Generate(), Quantity: dec("1"), UnitPrice: dec("-5")}},
	})
	assert.ErrorIs(t, err, saledomain.ErrInvalidPrice)
}

func TestFinalize_MarksCompletedAndRecordsMargin(t *testing.T) {
	svc, margin, node := newTestService(t)
	storeID := node.Generate()

	sale, err := svc.Create(context.Background(), saledomain.CreateRequest{
		StoreID: storeID,
		Items: []saledomain.CreateItemRequest{{
			DrugID:    node.Generate(),
			Quantity:  dec("1"),
			UnitPrice: dec("112"),
			GSTRate:   dec("12"),
		}},
	})
	require.NoError(t, err)

	margin.On("RecordSaleMargin", mock.Anything, storeID, sale.ID).
		Return(margindomain.RecordingResult{SaleID: sale.ID, Entries: 1})

	finalized, err := svc.Finalize(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, saledomain.SaleStatusCompleted, finalized.Status)
	require.NotNil(t, finalized.FinalizedAt)

	reloaded, err := svc.Get(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, saledomain.SaleStatusCompleted, reloaded.Status)

	margin.AssertExpectations(t)
}

func TestFinalize_SucceedsWhenMarginRecordingFails(t *testing.T) {
	svc, margin, node := newTestService(t)
	storeID := node.Generate()

	sale, err := svc.Create(context.Background(), saledomain.CreateRequest{
		StoreID: storeID,
		Items: []saledomain.CreateItemRequest{{
			DrugID:    node.Generate(),
			Quantity:  dec("2"),
			UnitPrice: dec("60"),
			GSTRate:   dec("5"),
		}},
	})
	require.NoError(t, err)

	margin.On("RecordSaleMargin", mock.Anything, storeID, sale.ID).
		Return(margindomain.RecordingResult{SaleID: sale.ID, Err: errors.New("ledger unavailable")})

	finalized, err := svc.Finalize(context.Background(), sale.ID)
	require.NoError(t, err, "a dropped margin recording must not fail the sale")
	assert.Equal(t, saledomain.SaleStatusCompleted, finalized.Status)

	reloaded, err := svc.Get(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, saledomain.SaleStatusCompleted, reloaded.Status)
	assert.NotNil(t, reloaded.FinalizedAt)

	margin.AssertExpectations(t)
}

func TestFinalize_RejectsSecondAttempt(t *testing.T) {
	svc, margin, node := newTestService(t)
	storeID := node.Generate()

	sale, err := svc.Create(context.Background(), saledomain.CreateRequest{
		StoreID: storeID,
		Items: []saledomain.CreateItemRequest{{
			DrugID:    node.Generate(),
			Quantity:  dec("1"),
			UnitPrice: dec("10"),
		}},
	})
	require.NoError(t, err)

	margin.On("RecordSaleMargin", mock.Anything, storeID, sale.ID).
		Return(margindomain.RecordingResult{SaleID: sale.ID}).Once()

	_, err = svc.Finalize(context.Background(), sale.ID)
	require.NoError(t, err)

	_, err = svc.Finalize(context.Background(), sale.ID)
	assert.ErrorIs(t, err, saledomain.ErrAlreadyFinalized)

	margin.AssertExpectations(t)
}

func TestFinalize_UnknownSale(t *testing.T) {
	svc, _, node := newTestService(t)

	_, err := svc.Finalize(context.Background(), node.Generate())
	assert.ErrorIs(t, err, saledomain.ErrNotFound)
}
