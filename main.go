package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe-ordering/billing"
	"cafe-ordering/cart"
	"cafe-ordering/catalog"
	"cafe-ordering/config"
	controller "cafe-ordering/controllers"
	"cafe-ordering/database"
	"cafe-ordering/feed"
	"cafe-ordering/guests"
	"cafe-ordering/helpers"
	"cafe-ordering/logging"
	"cafe-ordering/notify"
	"cafe-ordering/orders"
	"cafe-ordering/routes"
	"cafe-ordering/worker"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// store is what the service needs from persistence. Both database.Store
// and database.Memory satisfy it.
type store interface {
	catalog.Store
	guests.Store
	orders.Store
	orders.Analytics
	feed.Store
	billing.Store
	controller.UserStore
	controller.AnalysisStore
	WatchOrders(ctx context.Context) (<-chan struct{}, error)
}

func main() {
	found, envErr := config.LoadEnvFile(".env")
	cfg, err := config.FromEnv()
	if err != nil {
		boot := logging.New("info", true)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logging.New(cfg.LogLevel, cfg.LogPretty)
	switch {
	case envErr != nil:
		log.Warn().Err(envErr).Msg("could not load .env")
	case !found:
		log.Info().Msg(".env file does not exist in the current working directory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.App, log zerolog.Logger) error {
	st, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	runner := worker.New(log, 15*time.Second, 64)

	var notifier notify.Notifier = notify.LogNotifier{Log: log}
	if cfg.Broker.URL != "" {
		pub, err := notify.Dial(cfg.Broker.URL, cfg.Broker.Exchange)
		if err != nil {
			log.Warn().Err(err).Msg("broker unavailable, order messages are only logged")
		} else {
			defer pub.Close()
			notifier = pub
		}
	}

	hub := feed.NewHub(log)
	liveFeed := feed.New(st, hub, log)
	var watch <-chan struct{}
	if cfg.Mongo.ChangeStream && !cfg.Memory {
		if watch, err = st.WatchOrders(ctx); err != nil {
			log.Warn().Err(err).Msg("order change stream unavailable, feed refreshes on local writes only")
		}
	}
	feedDone := make(chan struct{})
	go func() {
		liveFeed.Run(ctx, watch)
		close(feedDone)
	}()

	sessions := cart.NewRegistry()
	tokens := helpers.NewTokenMaker(cfg.SecretKey, cfg.TokenTTL)
	menu := catalog.New(st, log)
	directory := guests.New(st)
	submitter := orders.NewSubmitter(orders.Deps{
		Store:       st,
		Analytics:   st,
		Guests:      st,
		Notifier:    notifier,
		Changes:     liveFeed,
		Background:  runner,
		Log:         log,
		NotifyPhone: cfg.NotifyPhone,
	})

	if !cfg.LogPretty {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.NewRouter(routes.Controllers{
		Users:    controller.NewUserController(st, tokens, sessions),
		Cart:     controller.NewCartController(sessions, menu, directory),
		Orders:   controller.NewOrderController(sessions, submitter, liveFeed),
		Feed:     controller.NewFeedController(liveFeed, cfg.CORSOrigins),
		Guests:   controller.NewGuestController(directory),
		Menu:     controller.NewMenuController(menu),
		Bills:    controller.NewBillController(billing.New(st), submitter, controller.BillConfig{Title: cfg.BillTitle, BaseURL: cfg.BillBaseURL}),
		Analysis: controller.NewAnalysisController(st, time.Local),
	}, tokens, log, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Bool("memory_store", cfg.Memory).Msg("listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	<-feedDone
	runner.Wait()
	return nil
}

func openStore(ctx context.Context, cfg config.App, log zerolog.Logger) (store, func(), error) {
	if cfg.Memory {
		log.Warn().Msg("using the in-memory store; data is lost on exit")
		return database.NewMemory(), func() {}, nil
	}

	client, err := database.Connect(ctx, cfg.Mongo.URL)
	if err != nil {
		return nil, nil, err
	}
	st := database.NewStore(client, cfg.Mongo.Database)
	if err := st.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("could not ensure indexes")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")
	return st, func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("closing MongoDB client")
		}
	}, nil
}

var (
	_ store = (*database.Store)(nil)
	_ store = (*database.Memory)(nil)
)
