package grpc_control

import (
	"context"
	"errors"
	"time"

	datasource "fn-peaks/src/data_source"
	"fn-peaks/src/helpers"
	"fn-peaks/src/interfaces"
	"fn-peaks/src/logger"
	"fn-peaks/src/models"
	"fn-peaks/src/utils"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ControlService implements PeakServiceServer
type ControlService struct {
	Config   *models.MConfig
	Runner   interfaces.IPeakRunner
	Channels *datasource.MultiChannelManager
	Location *time.Location
	Logger   *logger.Logger
	started  time.Time
}

// NewControlService creates a new instance of ControlService
func NewControlService(
	cfg *models.MConfig,
	runner interfaces.IPeakRunner,
	channels *datasource.MultiChannelManager,
	loc *time.Location,
	log *logger.Logger,
) *ControlService {
	if loc == nil {
		loc = time.UTC
	}
	return &ControlService{
		Config:   cfg,
		Runner:   runner,
		Channels: channels,
		Location: loc,
		Logger:   log,
		started:  time.Now(),
	}
}

// -----------------------------------------------------------------------------

func (s *ControlService) GetPeaks(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	start := req.GetFields()["start"].GetStringValue()
	end := req.GetFields()["end"].GetStringValue()
	if start == "" || end == "" {
		return nil, status.Error(codes.InvalidArgument, "start and end are required")
	}

	r, err := utils.ParseRange(start, end, s.Config.Aggregation.TimeLayout, s.Location)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	report, err := s.Runner.Run(ctx, r)
	if err != nil {
		if errors.Is(err, helpers.ErrRangeTooLarge) {
			return nil, status.Error(codes.FailedPrecondition, err.Error())
		}
		s.Logger.Error("gRPC: GetPeaks failed: %v", err)
		return nil, status.Error(codes.Internal, err.Error())
	}

	out, err := reportStruct(report)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	s.Logger.Debug("gRPC: GetPeaks %s -> %s returned %d rows", start, end, len(report.Rows))
	return out, nil
}

// -----------------------------------------------------------------------------

func (s *ControlService) Health(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": time.Since(s.started).Seconds(),
	})
}

// -----------------------------------------------------------------------------

func (s *ControlService) ListChannels(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	var channels []interface{}
	for _, src := range s.Channels.GetAllSources() {
		entry := map[string]interface{}{"name": src.Name()}
		for _, ch := range s.Config.Channels {
			if ch.Name == src.Name() {
				entry["label"] = ch.Label
				entry["root"] = ch.Root
			}
		}
		channels = append(channels, entry)
	}
	return structpb.NewStruct(map[string]interface{}{
		"channels":      channels,
		"max_span_days": s.Config.Aggregation.MaxSpanDays,
	})
}

// -----------------------------------------------------------------------------

// reportStruct flattens a report into the GetPeaks response shape.
func reportStruct(report *models.MPeakReport) (*structpb.Struct, error) {
	rows := make([]interface{}, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, map[string]interface{}{
			"device_id":         r.DeviceID,
			"name":              r.Name,
			"channel_a":         r.ChannelA.Value,
			"channel_b":         r.ChannelB.Value,
			"channel_a_display": r.ChannelA.Display,
			"channel_b_display": r.ChannelB.Display,
		})
	}
	columns := make([]interface{}, 0, len(report.Columns))
	for _, c := range report.Columns {
		columns = append(columns, c)
	}

	return structpb.NewStruct(map[string]interface{}{
		"span_days":    report.SpanDays,
		"generated_at": report.GeneratedAt.UTC().Format(time.RFC3339),
		"columns":      columns,
		"rows":         rows,
	})
}
