package grpc

// proto.go defines the gRPC server interface derived from nexus/decision/v1/decision.proto.
// This file serves as a stand-in for buf-generated code. Once `buf generate` is run,
// replace this file with the import from github.com/nexuscommerce/api/gen/go/nexus/decision/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DecisionServiceServer is the server API for DecisionService.
type DecisionServiceServer interface {
	EvaluateOrder(context.Context, *EvaluateOrderRequest) (*EvaluateOrderResponse, error)
	CalculateDiscount(context.Context, *CalculateDiscountRequest) (*CalculateDiscountResponse, error)
	GetDecision(context.Context, *GetDecisionRequest) (*GetDecisionResponse, error)
	CheckEligibility(context.Context, *CheckEligibilityRequest) (*CheckEligibilityResponse, error)
	mustEmbedUnimplementedDecisionServiceServer()
}

// UnimplementedDecisionServiceServer provides forward-compatible default implementations.
type UnimplementedDecisionServiceServer struct{}

func (UnimplementedDecisionServiceServer) EvaluateOrder(context.Context, *EvaluateOrderRequest) (*EvaluateOrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EvaluateOrder not implemented")
}
func (UnimplementedDecisionServiceServer) CalculateDiscount(context.Context, *CalculateDiscountRequest) (*CalculateDiscountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculateDiscount not implemented")
}
func (UnimplementedDecisionServiceServer) GetDecision(context.Context, *GetDecisionRequest) (*GetDecisionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDecision not implemented")
}
func (UnimplementedDecisionServiceServer) CheckEligibility(context.Context, *CheckEligibilityRequest) (*CheckEligibilityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CheckEligibility not implemented")
}
func (UnimplementedDecisionServiceServer) mustEmbedUnimplementedDecisionServiceServer() {}

// RegisterDecisionServiceServer registers the DecisionServiceServer with the gRPC server.
func RegisterDecisionServiceServer(s *grpclib.Server, srv DecisionServiceServer) {
	s.RegisterService(&_DecisionService_serviceDesc, srv)
}

var _DecisionService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "nexus.decision.v1.DecisionService",
	HandlerType: (*DecisionServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "EvaluateOrder", Handler: _DecisionService_EvaluateOrder_Handler},
		{MethodName: "CalculateDiscount", Handler: _DecisionService_CalculateDiscount_Handler},
		{MethodName: "GetDecision", Handler: _DecisionService_GetDecision_Handler},
		{MethodName: "CheckEligibility", Handler: _DecisionService_CheckEligibility_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _DecisionService_EvaluateOrder_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(EvaluateOrderRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(DecisionServiceServer).EvaluateOrder(ctx, req)
}

func _DecisionService_CalculateDiscount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(CalculateDiscountRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(DecisionServiceServer).CalculateDiscount(ctx, req)
}

func _DecisionService_GetDecision_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetDecisionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(DecisionServiceServer).GetDecision(ctx, req)
}

func _DecisionService_CheckEligibility_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(CheckEligibilityRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(DecisionServiceServer).CheckEligibility(ctx, req)
}
