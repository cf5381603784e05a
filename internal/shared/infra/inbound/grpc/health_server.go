package grpc

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	ggrpc "google.golang.org/grpc"
	grpcHealth "google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/davicafu/infopanel/internal/shared/infra/platform/health"
)

// HealthServer publica por gRPC (grpc.health.v1) el estado de las mismas
// comprobaciones que sirve /health. El servicio "" refleja el estado global.
type HealthServer struct {
	srv      *grpcHealth.Server
	checks   health.Checks
	interval time.Duration
	log      *zap.Logger
}

func NewHealthServer(checks health.Checks, interval time.Duration, log *zap.Logger) *HealthServer {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &HealthServer{
		srv:      grpcHealth.NewServer(),
		checks:   checks,
		interval: interval,
		log:      log,
	}
}

// Refresh ejecuta las comprobaciones y actualiza el estado de cada servicio.
func (h *HealthServer) Refresh(ctx context.Context) {
	healthy, results := h.checks.Run(ctx)
	for _, r := range results {
		if r.Err != nil {
			h.log.Warn("⚠️ Health check failed", zap.String("check", r.Name), zap.Error(r.Err))
		}
		h.srv.SetServingStatus(r.Name, servingStatus(r.Err == nil))
	}
	h.srv.SetServingStatus("", servingStatus(healthy))
}

// Run refresca el estado periódicamente hasta que ctx se cancela.
func (h *HealthServer) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			h.srv.Shutdown()
			return
		case <-ticker.C:
			h.Refresh(ctx)
		}
	}
}

func (h *HealthServer) Register(s *ggrpc.Server) {
	grpc_health_v1.RegisterHealthServer(s, h.srv)
}

// Serve escucha en addr hasta que ctx se cancela.
func Serve(ctx context.Context, addr string, hs *HealthServer, log *zap.Logger) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s := ggrpc.NewServer()
	hs.Register(s)
	go hs.Run(ctx)
	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	log.Info("🚀 gRPC health server running", zap.String("addr", lis.Addr().String()))
	return s.Serve(lis)
}

func servingStatus(ok bool) grpc_health_v1.HealthCheckResponse_ServingStatus {
	if ok {
		return grpc_health_v1.HealthCheckResponse_SERVING
	}
	return grpc_health_v1.HealthCheckResponse_NOT_SERVING
}
