package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"hearthside/internal/assets"
	"hearthside/internal/auth"
	"hearthside/internal/config"
	"hearthside/internal/handler"
	"hearthside/internal/middleware"
	"hearthside/internal/store"
	ws "hearthside/internal/websocket"
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	authH         *handler.AuthHandler
	adminH        *handler.AdminHandler
	memberH       *handler.MemberHandler
	dashboardH    *handler.DashboardHandler
	announcementH *handler.AnnouncementHandler
	messageH      *handler.MessageHandler
	eventH        *handler.EventHandler
	taskH         *handler.TaskHandler
	photoH        *handler.PhotoHandler
	pollH         *handler.PollHandler
	storyH        *handler.StoryHandler
	assetH        *handler.AssetHandler
	sessionStore  *store.SessionStore
	memberStore   *store.MemberStore
	adminRegistry *auth.AdminRegistry
	rateLimiter   *middleware.RateLimiter
	logger        *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	familyStore := store.NewFamilyStore(db)
	memberStore := store.NewMemberStore(db)
	sessionStore := store.NewSessionStore(db, cfg.SessionTTL)
	announcementStore := store.NewAnnouncementStore(db)
	messageStore := store.NewMessageStore(db)
	eventStore := store.NewEventStore(db)
	taskStore := store.NewTaskStore(db)
	photoStore := store.NewPhotoStore(db)
	pollStore := store.NewPollStore(db)
	storyStore := store.NewStoryStore(db)
	statsStore := store.NewStatsStore(db)

	assetStore := assets.NewStore()
	adminRegistry := auth.NewAdminRegistry(map[string]string{cfg.AdminUser: cfg.AdminPassword})

	return &Server{
		db:            db,
		hub:           hub,
		authH:         handler.NewAuthHandler(memberStore, sessionStore, assetStore, logger.With("component", "auth")),
		adminH:        handler.NewAdminHandler(familyStore, logger.With("component", "admin")),
		memberH:       handler.NewMemberHandler(memberStore),
		dashboardH:    handler.NewDashboardHandler(statsStore, logger.With("component", "dashboard")),
		announcementH: handler.NewAnnouncementHandler(announcementStore, hub, logger.With("component", "announcement")),
		messageH:      handler.NewMessageHandler(messageStore, hub, logger.With("component", "message")),
		eventH:        handler.NewEventHandler(eventStore, hub, logger.With("component", "event")),
		taskH:         handler.NewTaskHandler(taskStore, hub, logger.With("component", "task")),
		photoH:        handler.NewPhotoHandler(photoStore, assetStore, hub, logger.With("component", "photo")),
		pollH:         handler.NewPollHandler(pollStore, hub, logger.With("component", "poll")),
		storyH:        handler.NewStoryHandler(storyStore, hub, logger.With("component", "story")),
		assetH:        handler.NewAssetHandler(assetStore),
		sessionStore:  sessionStore,
		memberStore:   memberStore,
		adminRegistry: adminRegistry,
		rateLimiter:   middleware.NewRateLimiter(),
		logger:        logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("POST /api/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Admin routes — basic auth against the fixed registry
	adminMux := http.NewServeMux()
	adminMux.HandleFunc("POST /api/admin/families", s.adminH.Create)
	adminMux.HandleFunc("GET /api/admin/families", s.adminH.List)
	adminMux.HandleFunc("DELETE /api/admin/families/{code}", s.adminH.Delete)
	outerMux.Handle("/api/admin/", middleware.RequireAdmin(s.adminRegistry)(adminMux))

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.memberStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /logout", s.authH.Logout)

	mux.HandleFunc("GET /api/dashboard", s.dashboardH.Overview)
	mux.HandleFunc("GET /api/members", s.memberH.List)
	mux.HandleFunc("PUT /api/members/me/picture", s.authH.UpdateProfilePicture)

	mux.HandleFunc("GET /api/announcements", s.announcementH.List)
	mux.HandleFunc("POST /api/announcements", s.announcementH.Create)
	mux.HandleFunc("POST /api/announcements/{id}/reactions", s.announcementH.React)
	mux.HandleFunc("POST /api/announcements/{id}/comments", s.announcementH.Comment)

	mux.HandleFunc("GET /api/messages", s.messageH.List)
	mux.HandleFunc("POST /api/messages", s.messageH.Create)
	mux.HandleFunc("POST /api/messages/{id}/reactions", s.messageH.React)

	mux.HandleFunc("GET /api/events", s.eventH.List)
	mux.HandleFunc("POST /api/events", s.eventH.Create)
	mux.HandleFunc("POST /api/events/{id}/attend", s.eventH.Attend)

	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("POST /api/tasks/{id}/complete", s.taskH.Complete)

	mux.HandleFunc("GET /api/photos", s.photoH.List)
	mux.HandleFunc("POST /api/photos", s.photoH.Upload)
	mux.HandleFunc("GET /assets/{id}", s.assetH.Serve)

	mux.HandleFunc("GET /api/polls", s.pollH.List)
	mux.HandleFunc("POST /api/polls", s.pollH.Create)
	mux.HandleFunc("POST /api/polls/{id}/votes", s.pollH.Vote)

	mux.HandleFunc("GET /api/stories", s.storyH.List)
	mux.HandleFunc("POST /api/stories", s.storyH.Create)

	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
}
