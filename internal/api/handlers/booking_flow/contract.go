package booking_flow

import (
	"context"

	"github.com/m04kA/SLN-SchedulingService/internal/service/bookingflow/models"
)

type FlowService interface {
	Start(ctx context.Context) (*models.SessionResponse, error)
	Get(ctx context.Context, sessionID string) (*models.SessionResponse, error)
	SelectServices(ctx context.Context, sessionID string, req *models.SelectServicesRequest) (*models.SessionResponse, error)
	SelectDate(ctx context.Context, sessionID string, req *models.SelectDateRequest) (*models.SessionResponse, error)
	SelectTime(ctx context.Context, sessionID string, req *models.SelectTimeRequest) (*models.SessionResponse, error)
	Submit(ctx context.Context, sessionID string, req *models.SubmitRequest) (*models.SubmitResponse, error)
	Back(ctx context.Context, sessionID string) (*models.SessionResponse, error)
	Reset(ctx context.Context, sessionID string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
