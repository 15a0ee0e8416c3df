// Package proto declares the surveychain.v1.SurveyChain gRPC service.
//
// Every method is unary and exchanges google.protobuf.Struct messages, so the
// service needs no generated message types. The declarations below follow
// the shape protoc-gen-go-grpc emits: a server interface, an embeddable
// Unimplemented server, a ServiceDesc and a client. The service definition
// with the field names of every payload is in surveychain/v1/surveychain.proto.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "surveychain.v1.SurveyChain"

const (
	MethodPing                = "Ping"
	MethodLogin               = "Login"
	MethodRegisterParticipant = "RegisterParticipant"
	MethodGetParticipant      = "GetParticipant"
	MethodListParticipants    = "ListParticipants"
	MethodCreateSurvey        = "CreateSurvey"
	MethodGetSurvey           = "GetSurvey"
	MethodListSurveys         = "ListSurveys"
	MethodDeleteSurvey        = "DeleteSurvey"
	MethodAddModerator        = "AddModerator"
	MethodListModerators      = "ListModerators"
	MethodDeleteModerator     = "DeleteModerator"
	MethodSubmit              = "Submit"
	MethodRewardsFor          = "RewardsFor"
	MethodResponsesFor        = "ResponsesFor"
	MethodExportResponses     = "ExportResponses"
)

// FullMethod returns the "/service/method" name seen by interceptors.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// SurveyChainServer is the server API for the SurveyChain service.
type SurveyChainServer interface {
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RegisterParticipant(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetParticipant(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListParticipants(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateSurvey(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSurvey(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSurveys(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteSurvey(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddModerator(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListModerators(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteModerator(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Submit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RewardsFor(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResponsesFor(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportResponses(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedSurveyChainServer answers every method with codes.Unimplemented.
// Embed it to stay forward compatible when methods are added.
type UnimplementedSurveyChainServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedSurveyChainServer) Ping(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodPing)
}
func (UnimplementedSurveyChainServer) Login(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodLogin)
}
func (UnimplementedSurveyChainServer) RegisterParticipant(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodRegisterParticipant)
}
func (UnimplementedSurveyChainServer) GetParticipant(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetParticipant)
}
func (UnimplementedSurveyChainServer) ListParticipants(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodListParticipants)
}
func (UnimplementedSurveyChainServer) CreateSurvey(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodCreateSurvey)
}
func (UnimplementedSurveyChainServer) GetSurvey(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetSurvey)
}
func (UnimplementedSurveyChainServer) ListSurveys(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodListSurveys)
}
func (UnimplementedSurveyChainServer) DeleteSurvey(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodDeleteSurvey)
}
func (UnimplementedSurveyChainServer) AddModerator(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodAddModerator)
}
func (UnimplementedSurveyChainServer) ListModerators(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodListModerators)
}
func (UnimplementedSurveyChainServer) DeleteModerator(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodDeleteModerator)
}
func (UnimplementedSurveyChainServer) Submit(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodSubmit)
}
func (UnimplementedSurveyChainServer) RewardsFor(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodRewardsFor)
}
func (UnimplementedSurveyChainServer) ResponsesFor(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodResponsesFor)
}
func (UnimplementedSurveyChainServer) ExportResponses(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodExportResponses)
}

type unaryMethod func(SurveyChainServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodDesc(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(SurveyChainServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(SurveyChainServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// SurveyChain_ServiceDesc is the grpc.ServiceDesc for the SurveyChain service.
var SurveyChain_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SurveyChainServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc(MethodPing, SurveyChainServer.Ping),
		methodDesc(MethodLogin, SurveyChainServer.Login),
		methodDesc(MethodRegisterParticipant, SurveyChainServer.RegisterParticipant),
		methodDesc(MethodGetParticipant, SurveyChainServer.GetParticipant),
		methodDesc(MethodListParticipants, SurveyChainServer.ListParticipants),
		methodDesc(MethodCreateSurvey, SurveyChainServer.CreateSurvey),
		methodDesc(MethodGetSurvey, SurveyChainServer.GetSurvey),
		methodDesc(MethodListSurveys, SurveyChainServer.ListSurveys),
		methodDesc(MethodDeleteSurvey, SurveyChainServer.DeleteSurvey),
		methodDesc(MethodAddModerator, SurveyChainServer.AddModerator),
		methodDesc(MethodListModerators, SurveyChainServer.ListModerators),
		methodDesc(MethodDeleteModerator, SurveyChainServer.DeleteModerator),
		methodDesc(MethodSubmit, SurveyChainServer.Submit),
		methodDesc(MethodRewardsFor, SurveyChainServer.RewardsFor),
		methodDesc(MethodResponsesFor, SurveyChainServer.ResponsesFor),
		methodDesc(MethodExportResponses, SurveyChainServer.ExportResponses),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "surveychain/v1/surveychain.proto",
}

func RegisterSurveyChainServer(s grpc.ServiceRegistrar, srv SurveyChainServer) {
	s.RegisterService(&SurveyChain_ServiceDesc, srv)
}

// SurveyChainClient is the client API for the SurveyChain service.
type SurveyChainClient interface {
	Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type surveyChainClient struct {
	cc grpc.ClientConnInterface
}

func NewSurveyChainClient(cc grpc.ClientConnInterface) SurveyChainClient {
	return &surveyChainClient{cc}
}

// Call invokes one of the Method* names.
func (c *surveyChainClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
