package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/consolidation-service/internal/application/dto"
	"github.com/bibbank/consolidation-service/internal/application/usecase"
	"github.com/bibbank/consolidation-service/internal/domain/valueobject"
)

// Handler implements ConsolidationServiceServer on top of the use cases.
type Handler struct {
	UnimplementedConsolidationServiceServer
	evaluateUC *usecase.EvaluateCustomerUseCase
	offersUC   *usecase.ListOffersUseCase
	logger     *slog.Logger
}

// NewHandler creates the gRPC handler.
func NewHandler(
	evaluateUC *usecase.EvaluateCustomerUseCase,
	offersUC *usecase.ListOffersUseCase,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		evaluateUC: evaluateUC,
		offersUC:   offersUC,
		logger:     logger,
	}
}

// EvaluateCustomer runs the full decision for one customer.
func (h *Handler) EvaluateCustomer(ctx context.Context, req *EvaluateCustomerRequest) (*EvaluateCustomerResponse, error) {
	appReq, err := toEvaluateRequest(req)
	if err != nil {
		return nil, toStatusError(err)
	}

	result, err := h.evaluateUC.Execute(ctx, appReq)
	if err != nil {
		h.logger.Error("evaluate customer failed",
			slog.String("customer_id", req.CustomerID),
			slog.String("error", err.Error()),
		)
		return nil, toStatusError(err)
	}

	h.logger.Info("customer evaluated",
		slog.String("customer_id", result.CustomerID),
		slog.String("evaluation_id", result.EvaluationID),
		slog.Int("admissible_offers", len(result.Offers)),
		slog.String("best_offer_id", result.BestOfferID),
	)

	return &EvaluateCustomerResponse{Result: result}, nil
}

// ListOffers returns the loaded offer catalog.
func (h *Handler) ListOffers(_ context.Context, _ *ListOffersRequest) (*ListOffersResponse, error) {
	resp := h.offersUC.Execute()
	return &ListOffersResponse{Offers: resp.Offers}, nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func toEvaluateRequest(req *EvaluateCustomerRequest) (dto.EvaluateCustomerRequest, error) {
	income, err := parseAmount("monthly_income", req.MonthlyIncome)
	if err != nil {
		return dto.EvaluateCustomerRequest{}, err
	}
	obligations, err := parseAmount("recurring_obligations", req.RecurringObligations)
	if err != nil {
		return dto.EvaluateCustomerRequest{}, err
	}

	accounts := make([]dto.AccountRecord, 0, len(req.Accounts))
	for _, a := range req.Accounts {
		balance, err := parseAmount("account.balance", a.Balance)
		if err != nil {
			return dto.EvaluateCustomerRequest{}, err
		}
		rate, err := parseAmount("account.annual_rate", a.AnnualRate)
		if err != nil {
			return dto.EvaluateCustomerRequest{}, err
		}
		minPayment, err := parseAmount("account.min_payment", a.MinPayment)
		if err != nil {
			return dto.EvaluateCustomerRequest{}, err
		}
		accounts = append(accounts, dto.AccountRecord{
			ID:          a.ID,
			ProductType: a.ProductType,
			Balance:     balance,
			AnnualRate:  rate,
			MinPayment:  minPayment,
			Delinquency: a.Delinquency,
			TermMonths:  a.TermMonths,
		})
	}

	return dto.EvaluateCustomerRequest{
		CustomerID:          req.CustomerID,
		RequestedTermMonths: req.RequestedTermMonths,
		Accounts:            accounts,
		Credit: dto.CreditProfileRecord{
			Score: req.CreditScore,
			Flags: req.CreditFlags,
		},
		Cashflow: dto.CashflowRecord{
			MonthlyIncome:        income,
			RecurringObligations: obligations,
		},
	}, nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, valueobject.NewDataValidationError(field, "invalid decimal %q", raw)
	}
	return d, nil
}

func toStatusError(err error) error {
	var validationErr *valueobject.DataValidationError
	if errors.As(err, &validationErr) {
		return status.Error(codes.InvalidArgument, validationErr.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
