package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/c9s/bollband/pkg/config"
	"github.com/c9s/bollband/pkg/metrics"
	"github.com/c9s/bollband/pkg/types"
)

var log = logrus.WithField("component", "server")

const requestIDHeader = "X-Request-Id"

// PriceLoader loads the latest price series, e.g. from the configured data path.
type PriceLoader func(ctx context.Context) (types.PriceSeries, error)

type Server struct {
	Config *config.Config
	Store  *Store
	Hub    *Hub

	// Loader is used by the scheduled reload; nil disables reloading.
	Loader PriceLoader
}

func New(cfg *config.Config, store *Store, loader PriceLoader) *Server {
	s := &Server{
		Config: cfg,
		Store:  store,
		Hub:    NewHub(),
		Loader: loader,
	}

	store.OnChange(s.Hub.Broadcast)
	return s
}

func (s *Server) Router() *gin.Engine {
	allowOrigins := s.Config.Server.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowHeaders:     []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH"},
		AllowWebSockets:  true,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(requestID(), requestMetrics())

	r.GET("/api/ping", s.ping)

	r.GET("/api/settings", s.getSettings)
	r.PUT("/api/settings", s.putSettings)
	r.POST("/api/settings", s.postSettings)
	r.PATCH("/api/settings", s.patchSettings)

	r.GET("/api/bands", s.getBands)
	r.GET("/api/bands/at/:index", s.getBandAt)
	r.POST("/api/overlay", s.postOverlay)
	r.GET("/api/chart", s.getChart)

	r.GET("/api/stream", func(c *gin.Context) {
		s.Hub.Serve(c.Writer, c.Request, s.Store.Snapshot())
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// Run serves http until ctx is canceled, reloading the prices on the
// configured schedule.
func (s *Server) Run(ctx context.Context) error {
	if schedule := s.Config.Server.ReloadSchedule; schedule != "" {
		if s.Loader == nil {
			return errors.New("reload schedule is set but there is no price loader")
		}

		c := cron.New()
		if _, err := c.AddFunc(schedule, func() {
			if err := s.Reload(ctx); err != nil {
				log.WithError(err).Error("price reload error")
			}
		}); err != nil {
			return errors.Wrapf(err, "invalid reload schedule %q", schedule)
		}

		c.Start()
		defer c.Stop()
		log.Infof("reloading prices on schedule %q", schedule)
	}

	srv := &http.Server{
		Addr:              s.Config.Server.Bind,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", srv.Addr)
		errC <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)

	case err := <-errC:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Reload loads the prices again and swaps them into the store.
func (s *Server) Reload(ctx context.Context) error {
	if s.Loader == nil {
		return errors.New("no price loader")
	}

	prices, err := s.Loader(ctx)
	if err != nil {
		metrics.ReloadTotalMetrics.WithLabelValues("error").Inc()
		return err
	}

	snapshot := s.Store.SetPrices(prices)
	metrics.ReloadTotalMetrics.WithLabelValues("ok").Inc()
	metrics.LoadedCandlesMetrics.Set(float64(len(prices)))
	log.Infof("reloaded %d candles, %d band points", len(prices), len(snapshot.Bands))
	return nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestMetrics.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
