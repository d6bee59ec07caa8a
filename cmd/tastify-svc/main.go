package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tastify/config"
	httpapi "tastify/internal/api/http"
	"tastify/internal/location"
	"tastify/internal/service"
	"tastify/internal/storage"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	config.LoadEnv()
	logger := config.NewLogger()
	defer logger.Sync()

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	reader := config.NewKafkaReader("reviews", "reviews-feed")
	defer reader.Close()

	writer := config.NewKafkaWriter("reviews")
	defer writer.Close()

	store := storage.NewPostgresStore(db)
	publisher := storage.NewKafkaPublisher(writer)
	gateway := storage.NewLiveGateway(store, reader, publisher, logger)

	apiKey := os.Getenv("GEOCODING_API_KEY")
	geocoder := location.NewGeocoder(os.Getenv("GEOCODING_BASE_URL"), apiKey, logger)
	places := location.NewPlacesClient(os.Getenv("PLACES_BASE_URL"), apiKey)
	cache := storage.NewRedisCoordinateCache(rdb, 24*time.Hour)
	source := location.NewChainSource(location.NewStaticSource(), places, geocoder, cache, logger)

	enricher := service.NewEnricher(source, logger)
	feed := service.NewReviewFeed(gateway, enricher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	feed.Start(ctx)
	defer feed.Close()

	handler := httpapi.NewHandler(feed, service.MapQRGenerator{})
	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: cors.Default().Handler(r),
	}

	go func() {
		logger.Infow("Tastify review service starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("shutdown failed", "error", err)
	}
}
