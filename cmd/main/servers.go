package main

import (
	"fmt"
	"net"
	"time"

	datasource "fn-peaks/src/data_source"
	pb "fn-peaks/src/grpc_control"
	"fn-peaks/src/interfaces"
	"fn-peaks/src/logger"
	"fn-peaks/src/models"

	"google.golang.org/grpc"
)

// -----------------------------------------------------------------------------

// startServers starts the HTTP server and, when grpc_port is set, the gRPC
// server. The returned gRPC server is nil when disabled.
func startServers(
	srv interfaces.IDataExchanger,
	runner interfaces.IPeakRunner,
	channels *datasource.MultiChannelManager,
	config *models.MConfig,
	loc *time.Location,
	appLogger *logger.Logger,
) *grpc.Server {

	// 1. FastAPIServer
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	// 2. gRPC Peak Service
	if config.GrpcPort == 0 {
		return nil
	}

	addr := fmt.Sprintf("%s:%d", config.GrpcHost, config.GrpcPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		appLogger.Error("failed to listen for gRPC on %s: %v", addr, err)
		return nil
	}

	grpcServer := grpc.NewServer()
	grpcLogger := logger.NewLogger(config, "PeakService")
	service := pb.NewControlService(config, runner, channels, loc, grpcLogger)
	pb.RegisterPeakServiceServer(grpcServer, service)

	go func() {
		appLogger.Info("Starting gRPC Peak Service on %s", addr)
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Error("failed to serve gRPC: %v", err)
		}
	}()
	return grpcServer
}
