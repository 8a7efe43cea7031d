package grpc

// proto.go defines the gRPC server interface derived from
// bib/consolidation/v1/consolidation.proto. This file serves as a stand-in
// for buf-generated code; once `buf generate` is run, replace it with the
// import from the generated package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/consolidation-service/internal/application/dto"
)

// ---------------------------------------------------------------------------
// Wire messages. Monetary amounts travel as strings and are parsed into
// exact decimals at the boundary.
// ---------------------------------------------------------------------------

// AccountMessage is one debt instrument on the wire.
type AccountMessage struct {
	ID          string `json:"id"`
	ProductType string `json:"product_type"`
	Balance     string `json:"balance"`
	AnnualRate  string `json:"annual_rate"`
	MinPayment  string `json:"min_payment"`
	Delinquency string `json:"delinquency"`
	TermMonths  int    `json:"term_months,omitempty"`
}

// EvaluateCustomerRequest asks for a full consolidation decision.
type EvaluateCustomerRequest struct {
	CustomerID           string           `json:"customer_id"`
	RequestedTermMonths  int              `json:"requested_term_months,omitempty"`
	Accounts             []AccountMessage `json:"accounts"`
	CreditScore          int              `json:"credit_score"`
	CreditFlags          []string         `json:"credit_flags,omitempty"`
	MonthlyIncome        string           `json:"monthly_income"`
	RecurringObligations string           `json:"recurring_obligations"`
}

// EvaluateCustomerResponse carries the composite evaluation result.
type EvaluateCustomerResponse struct {
	Result dto.EvaluateCustomerResponse `json:"result"`
}

// ListOffersRequest asks for the offer catalog.
type ListOffersRequest struct{}

// ListOffersResponse lists the catalog contents.
type ListOffersResponse struct {
	Offers []dto.OfferResponse `json:"offers"`
}

// ---------------------------------------------------------------------------
// Service interface and registration
// ---------------------------------------------------------------------------

// ConsolidationServiceServer is the server API for ConsolidationService.
// It mirrors the proto-generated interface from bib.consolidation.v1.
type ConsolidationServiceServer interface {
	EvaluateCustomer(context.Context, *EvaluateCustomerRequest) (*EvaluateCustomerResponse, error)
	ListOffers(context.Context, *ListOffersRequest) (*ListOffersResponse, error)
	mustEmbedUnimplementedConsolidationServiceServer()
}

// UnimplementedConsolidationServiceServer provides forward-compatible
// default implementations.
type UnimplementedConsolidationServiceServer struct{}

func (UnimplementedConsolidationServiceServer) EvaluateCustomer(context.Context, *EvaluateCustomerRequest) (*EvaluateCustomerResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EvaluateCustomer not implemented")
}
func (UnimplementedConsolidationServiceServer) ListOffers(context.Context, *ListOffersRequest) (*ListOffersResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListOffers not implemented")
}
func (UnimplementedConsolidationServiceServer) mustEmbedUnimplementedConsolidationServiceServer() {}

// RegisterConsolidationServiceServer registers the server implementation.
func RegisterConsolidationServiceServer(s *grpclib.Server, srv ConsolidationServiceServer) {
	s.RegisterService(&_ConsolidationService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _ConsolidationService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "bib.consolidation.v1.ConsolidationService",
	HandlerType: (*ConsolidationServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "EvaluateCustomer", Handler: _ConsolidationService_EvaluateCustomer_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "ListOffers", Handler: _ConsolidationService_ListOffers_Handler},             //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _ConsolidationService_EvaluateCustomer_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(EvaluateCustomerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConsolidationServiceServer).EvaluateCustomer(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/bib.consolidation.v1.ConsolidationService/EvaluateCustomer",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConsolidationServiceServer).EvaluateCustomer(ctx, req.(*EvaluateCustomerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ConsolidationService_ListOffers_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListOffersRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConsolidationServiceServer).ListOffers(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/bib.consolidation.v1.ConsolidationService/ListOffers",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConsolidationServiceServer).ListOffers(ctx, req.(*ListOffersRequest))
	}
	return interceptor(ctx, in, info, handler)
}
