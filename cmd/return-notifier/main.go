package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/NordCoder/tsreturn/internal/config/return-notifier"
	"github.com/NordCoder/tsreturn/internal/domain/returns"
	"github.com/NordCoder/tsreturn/internal/obs"
	"github.com/NordCoder/tsreturn/internal/repository/kafka"
	pg "github.com/NordCoder/tsreturn/internal/repository/postgres"
	rds "github.com/NordCoder/tsreturn/internal/repository/redis"
	notifier "github.com/NordCoder/tsreturn/internal/services/return-notifier"
	"github.com/redis/go-redis/v9"

	"go.uber.org/zap"
)

type deps struct {
	db    *pg.DB
	rdb   *redis.Client
	sms   *kafka.Producer
	out   *kafka.Producer
	cons  *kafka.Consumer
	texts *notifier.Catalog
}

func wiring(cfg *config.Config, d deps, l *zap.Logger) (*notifier.Handler, *notifier.Controller) {
	var parties returns.PartyReader = pg.NewPartyRepo(d.db)
	if d.rdb != nil {
		parties = rds.NewPartyCache(d.rdb, parties, cfg.Redis.TTL, l)
	}

	uc := &notifier.Handler{
		Parties:  parties,
		Permits:  pg.NewPermitRepo(d.db),
		Statuses: returns.StatusNames{},
		Texts:    d.texts,
		Mail:     notifier.NewMailer(cfg.SMTP).WithLogger(l),
		SMS:      notifier.NewKafkaSMS(d.sms, l),
		Settings: cfg,
		Log:      l,
	}

	return uc, &notifier.Controller{Log: l, Sub: d.cons, Pub: d.out, UC: uc}
}

func main() {
	// init
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatal(err)
	}

	// logger
	l, err := obs.NewLogger(cfg.AsLoggerConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	l.Info("starting return-notifier",
		zap.Any("kafka_in", cfg.In),
		zap.String("http_addr", cfg.Server.HTTPAddr),
		zap.String("metrics_addr", cfg.Server.MetricsAddr),
		zap.String("smtp_addr", cfg.SMTP.Addr),
	)

	// otel
	otelCloser, err := obs.SetupOTel(rootCtx, cfg.OTEL.AsOTELConfig())
	if err != nil {
		l.Warn("otel init", zap.Error(err))
	}
	defer func() {
		if otelCloser != nil {
			_ = otelCloser.Shutdown(context.Background())
		}
	}()

	// texts
	overrides, err := cfg.Texts.ResellerOverrides()
	if err != nil {
		l.Fatal("texts config", zap.Error(err))
	}
	texts, err := notifier.NewCatalog(cfg.Texts.Default, overrides)
	if err != nil {
		l.Fatal("texts parse", zap.Error(err))
	}

	// db
	db, err := pg.New(rootCtx, cfg.DB)
	if err != nil {
		l.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()
	l.Info("db connected")

	checks := map[string]obs.HealthCheck{
		"postgres": func(ctx context.Context) error {
			hctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
			defer cancel()
			return db.Ping(hctx)
		},
	}

	// redis
	var rdb *redis.Client
	if cfg.Redis.Enable {
		rdb, err = rds.NewClient(rootCtx, cfg.Redis)
		if err != nil {
			l.Warn("redis unavailable, party cache disabled", zap.Error(err))
		} else {
			defer func() { _ = rdb.Close() }()
			checks["redis"] = func(ctx context.Context) error {
				hctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
				defer cancel()
				return rdb.Ping(hctx).Err()
			}
			l.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// metrics
	ms := obs.BootstrapMetricsServer(cfg.Server.MetricsAddr, checks, l)

	// kafka
	cons := kafka.BootstrapConsumer(rootCtx, cfg.In.AsConsumerConfig(), l).WithLogger(l)
	defer func() { _ = cons.Close() }()
	l.Info("kafka consumer initialized",
		zap.Strings("brokers", cfg.In.Brokers),
		zap.String("group_id", cfg.In.GroupID),
		zap.String("topic", cfg.In.Topic),
	)

	smsProd := kafka.BootstrapProducer(rootCtx, cfg.SMS.Brokers, cfg.SMS.Topic, l)
	defer func() { _ = smsProd.Close() }()

	outProd := kafka.BootstrapProducer(rootCtx, cfg.Out.Brokers, cfg.Out.Topic, l)
	defer func() { _ = outProd.Close() }()

	// wiring
	uc, ctrl := wiring(cfg, deps{db: db, rdb: rdb, sms: smsProd, out: outProd, cons: cons, texts: texts}, l)

	srv := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      notifier.NewHTTPHandler(uc, l),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// start
	errCh := make(chan error, 2)
	go func() {
		l.Info("controller starting")
		errCh <- ctrl.Run(rootCtx)
	}()
	go func() {
		l.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// main loop
	select {
	case <-rootCtx.Done():
		l.Info("shutdown signal")
	case runErr := <-errCh:
		if runErr != nil && !errors.Is(runErr, context.Canceled) {
			l.Error("service error", zap.Error(runErr))
		}
	}

	// graceful shutdown
	shCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		l.Warn("http shutdown", zap.Error(err))
	}
	_ = ms.Shutdown(shCtx)
	l.Info("bye")
}

// configPath prefers CONFIG_PATH; without it the default file is optional and
// defaults plus environment are used.
func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	const def = "../config/return-notifier.yaml"
	if _, err := os.Stat(def); err != nil {
		return ""
	}
	return def
}
