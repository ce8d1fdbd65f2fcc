package main

import (
	"net/http"
	"os"
	"time"

	"github.com/Jahankohan/FeedCloud/app"
	"github.com/Jahankohan/FeedCloud/config"
	"github.com/Jahankohan/FeedCloud/feedreader"
	"github.com/Jahankohan/FeedCloud/lib"
	"github.com/Jahankohan/FeedCloud/lib/poller"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger() (*zap.Logger, error) {
	switch os.Getenv("ENVIRONMENT") {
	default:
		return zap.NewDevelopment()

	case "production":
		logCfg := zap.NewProductionConfig()
		logCfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			t = t.UTC()
			zapcore.ISO8601TimeEncoder(t, enc)
		}
		return logCfg.Build()
	}
}

func main() {
	fx.New(
		fx.Provide(config.NewConfig),
		fx.Provide(NewLogger),

		fx.Provide(app.NewDatabase),
		fx.Provide(app.NewTransport),
		fx.Provide(feedreader.NewReader),

		fx.Provide(poller.NewIngester),
		fx.Provide(poller.NewDispatcher),
		fx.Provide(poller.NewPoller),

		fx.Provide(lib.NewService),
		fx.Provide(app.NewAPI),

		fx.Invoke(func(*poller.Poller) {}),
		fx.Invoke(func(*http.Server) {}),
	).Run()
}
