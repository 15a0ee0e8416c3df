// Package grpc exposes the SurveyChain services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/surveychain/internal/logging"
	pb "github.com/dmitrijs2005/surveychain/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Services bundles the business services the handlers delegate to.
type Services struct {
	Auth         AuthService
	Surveys      SurveyService
	Participants ParticipantService
	Moderators   ModeratorService
	Settlement   SettlementService
	Ledger       LedgerService
	Export       ExportService
}

type GRPCServer struct {
	pb.UnimplementedSurveyChainServer
	address   string
	services  Services
	logger    logging.Logger
	jwtSecret []byte
	health    *health.Server
}

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		services:  svc,
		jwtSecret: []byte(secretKey),
		health:    health.NewServer(),
	}, nil
}

// NewServer builds a grpc.Server with the interceptors installed and the
// SurveyChain and health services registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	pb.RegisterSurveyChainServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
