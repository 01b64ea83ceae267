package app

import (
	"net/http"
	"time"

	"github.com/driveshare/core/internal/middleware"
	"github.com/driveshare/core/internal/modules/auth/host"
	"github.com/driveshare/core/internal/modules/fleet/activity"
	"github.com/driveshare/core/internal/modules/fleet/booking"
	"github.com/driveshare/core/internal/modules/fleet/claim"
	"github.com/driveshare/core/internal/modules/fleet/vehicle"
	"github.com/driveshare/core/internal/modules/gateway/notify"
	"github.com/driveshare/core/internal/modules/messaging/inbox"
	"github.com/driveshare/core/internal/modules/system/health"
	"github.com/driveshare/core/internal/modules/system/tasks"
	"github.com/driveshare/core/internal/pkg/bark"
	pkgredis "github.com/driveshare/core/internal/pkg/redis"
	"github.com/driveshare/core/internal/pkg/response"
	"github.com/driveshare/core/internal/pkg/taskqueue"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	cfg := a.cfg
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "driveshare-core",
		"version": "1.0.0",
	}

	// Bark push service for rate-limit and fleet alerts.
	barkSvc := bark.New(func() (key, serverURL, siteTitle string) {
		if !cfg.Bark.Enable {
			return "", "", ""
		}
		return cfg.Bark.Key, cfg.Bark.ServerURL, cfg.AppTitle
	})

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(rc.Raw(), barkSvc))
	r.Use(middleware.Idempotence(rc.Raw()))

	taskSvc := taskqueue.NewService(rc)

	// Shared services
	notifySvc := notify.New(db, cfg, barkSvc, taskSvc, a.logger)
	activitySvc := activity.NewService(db)
	bookingSvc := booking.NewService(db)
	vehicleSvc := vehicle.NewService(db, activitySvc, bookingSvc, notifySvc)
	claimSvc := claim.NewService(db, activitySvc, notifySvc)
	hostSvc := host.NewService(db)
	inboxSvc := inbox.NewService(db)

	// Versioned API
	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(db))

	health.RegisterRoutes(api, db, rc.Raw(), a.sched, authMW)
	tasks.NewHandler(taskSvc).RegisterRoutes(api, authMW)

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		uptimeMs := time.Since(a.startTime()).Milliseconds()
		c.JSON(http.StatusOK, gin.H{
			"timestamp": uptimeMs,
			"humanize":  humanizeDuration(time.Duration(uptimeMs) * time.Millisecond),
		})
	})

	// Auth & host profile
	host.NewHandler(hostSvc).RegisterRoutes(api, authMW)

	// Fleet
	vehicle.NewHandler(vehicleSvc).RegisterRoutes(api, authMW)
	claim.NewHandler(claimSvc).RegisterRoutes(api, authMW)
	activity.NewHandler(activitySvc).RegisterRoutes(api, authMW)

	// Messaging & notifications
	inbox.NewHandler(inboxSvc).RegisterRoutes(api, authMW)
	notify.NewHandler(notifySvc).RegisterRoutes(api, authMW)
}
