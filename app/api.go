package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Jahankohan/FeedCloud/config"
	"github.com/Jahankohan/FeedCloud/lib"
	"github.com/Jahankohan/FeedCloud/lib/models"
	"github.com/Jahankohan/FeedCloud/lib/poller"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewAPI(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, svc *lib.Service, dispatcher *poller.Dispatcher) *http.Server {
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	srv := &http.Server{Addr: addr, Handler: router(cfg, log, svc, dispatcher)}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go srv.ListenAndServe()
			return nil
		},
		OnStop: srv.Shutdown,
	})

	return srv
}

func router(cfg *config.Config, log *zap.Logger, svc *lib.Service, dispatcher *poller.Dispatcher) http.Handler {
	ctrl := &controller{log, svc}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]any{
			"status":      "ok",
			"queued_jobs": dispatcher.Pending(),
		})
		w.Write(body)
	})

	r.Route("/api", func(r chi.Router) {
		if creds := cfg.GetCreds(); len(creds) > 0 {
			r.Use(middleware.BasicAuth("feedcloud", creds))
		} else {
			log.Sugar().Info("Auth is disabled since no credentials are defined")
		}

		r.Route("/feeds", func(r chi.Router) {
			r.Post("/", ctrl.createFeed)
			r.Get("/", ctrl.listFeeds)
			r.Get("/{feed_id}", ctrl.getFeed)
			r.Patch("/{feed_id}", ctrl.updateFeed)
			r.Get("/{feed_id}/entries", ctrl.listEntries)
		})
	})

	return r
}

type controller struct {
	log *zap.Logger
	svc *lib.Service
}

func (ctrl *controller) reject(w http.ResponseWriter, status int, err error) {
	if err != nil {
		http.Error(w, err.Error(), status)
	} else {
		w.WriteHeader(status)
	}
}

func (ctrl *controller) resolve(w http.ResponseWriter, status int, body any) {
	if b, err := json.Marshal(body); err != nil {
		ctrl.reject(w, http.StatusInternalServerError, err)
		ctrl.log.Sugar().Error("Request failed", "error", err)
		return
	} else {
		w.WriteHeader(status)
		if b != nil {
			w.Write(b)
		}
	}
}

func (ctrl *controller) createFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	link := r.FormValue("link")
	timeout := parseInt(r.FormValue("timeout"))

	if link == "" {
		ctrl.reject(w, 400, errors.New("Link is required"))
		return
	}

	feed, err := ctrl.svc.CreateFeed(ctx, link, int(timeout))
	if err != nil {
		ctrl.reject(w, 500, err)
		return
	}
	ctrl.resolve(w, http.StatusAccepted, FeedView{}.From(*feed))
}

func (ctrl *controller) updateFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	feedID := chi.URLParam(r, "feed_id")
	link := r.FormValue("link")
	timeout := parseInt(r.FormValue("timeout"))
	forceUpdate := r.FormValue("force_update") == "true"

	feed, err := ctrl.svc.UpdateFeed(ctx, parseInt(feedID), link, int(timeout), forceUpdate)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctrl.reject(w, 404, err)
		return
	} else if err != nil {
		ctrl.reject(w, 500, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, FeedView{}.From(*feed))
}

func (ctrl *controller) getFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	feedID := chi.URLParam(r, "feed_id")

	feed, err := ctrl.svc.GetFeed(ctx, parseInt(feedID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctrl.reject(w, 404, err)
		return
	} else if err != nil {
		ctrl.reject(w, 500, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, FeedView{}.From(*feed))
}

func (ctrl *controller) listFeeds(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	feeds, err := ctrl.svc.ListFeeds(ctx)
	if err != nil {
		ctrl.reject(w, 500, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, FromMany[models.Feed, FeedView](feeds))
}

func (ctrl *controller) listEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	feedID := chi.URLParam(r, "feed_id")

	entries, err := ctrl.svc.ListEntries(ctx, parseInt(feedID))
	if err != nil {
		ctrl.reject(w, 500, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, FromMany[models.Entry, EntryView](entries))
}

func parseInt(s string) uint {
	u, _ := strconv.ParseUint(s, 10, 64)
	return uint(u)
}
