package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpggio/teamboard/internal/domain/project"
	"github.com/rpggio/teamboard/internal/domain/task"
	"github.com/rpggio/teamboard/internal/domain/user"
	"github.com/rpggio/teamboard/internal/metrics"
	"github.com/rpggio/teamboard/internal/repository"
)

// Services bundles the domain services the HTTP layer depends on.
type Services struct {
	Users    *user.Service
	Projects *project.Service
	Tasks    *task.Service
}

// Config wires the HTTP server.
type Config struct {
	Services Services
	Sessions repository.SessionRepository
	Resolver UserResolver
	Logger   *slog.Logger
	// Now supplies the reference instant for every derived metric.
	// Defaults to time.Now; tests pin it to a fixed instant.
	Now func() time.Time
}

// Server owns the HTTP handlers.
type Server struct {
	svc      Services
	sessions repository.SessionRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewServer creates the router. Admin routes are gated to admin users;
// /api/me routes are available to any authenticated user.
func NewServer(cfg Config) *chi.Mux {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	srv := &Server{
		svc:      cfg.Services,
		sessions: cfg.Sessions,
		logger:   cfg.Logger,
		now:      now,
	}

	r := chi.NewRouter()

	r.Get("/health", srv.handleHealth)
	r.Post("/api/login", srv.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Resolver))

		r.Get("/api/me/dashboard", srv.handleMemberDashboard)
		r.Get("/api/me/activity", srv.handleMemberActivity)
		r.Get("/api/me/tasks", srv.handleMemberTasks)
		r.Get("/api/me/projects", srv.handleMemberProjects)
		r.Patch("/api/tasks/{id}/status", srv.handleTaskStatus)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)

			r.Get("/api/overview", srv.handleOverview)
			r.Get("/api/analytics", srv.handleAnalytics)
			r.Get("/api/team", srv.handleTeam)
			r.Get("/api/calendar/day", srv.handleCalendarDay)
			r.Get("/api/calendar/upcoming", srv.handleCalendarUpcoming)
			r.Post("/api/users", srv.handleCreateUser)
			r.Get("/api/projects", srv.handleListProjects)
			r.Post("/api/projects", srv.handleCreateProject)
			r.Get("/api/projects/{id}", srv.handleGetProject)
			r.Patch("/api/projects/{id}", srv.handleUpdateProject)
			r.Delete("/api/projects/{id}", srv.handleDeleteProject)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type loginRequest struct {
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

// handleLogin issues a session token for a known email and role. There is no
// password check; this mirrors the demo authentication of the original app.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	users, err := s.svc.Users.List(r.Context(), user.ListOptions{Role: &req.Role, Search: req.Email})
	if err != nil {
		s.internalError(w, "list users", err)
		return
	}

	var match *user.User
	for i := range users {
		if users[i].Email == req.Email {
			match = &users[i]
			break
		}
	}
	if match == nil {
		writeError(w, http.StatusUnauthorized, "unknown email or role")
		return
	}

	token := uuid.NewString()
	if err := s.sessions.Create(r.Context(), HashToken(token), match.ID, s.now()); err != nil {
		s.internalError(w, "create session", err)
		return
	}

	if err := s.svc.Users.Touch(r.Context(), match.ID, s.now()); err != nil {
		s.logger.Warn("failed to record login activity", "user", match.ID, "error", err)
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: *match})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	users, projects, tasks, err := s.snapshot(r)
	if err != nil {
		s.internalError(w, "load snapshot", err)
		return
	}
	writeJSON(w, http.StatusOK, metrics.AdminOverview(users, projects, tasks))
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	users, projects, tasks, err := s.snapshot(r)
	if err != nil {
		s.internalError(w, "load snapshot", err)
		return
	}
	writeJSON(w, http.StatusOK, metrics.Analytics(users, projects, tasks, s.now()))
}

// handleTeam lists team members with per-member rollups, filtered by the
// search and department query params.
func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	role := user.RoleTeamMember
	members, err := s.svc.Users.List(r.Context(), user.ListOptions{
		Role:       &role,
		Department: r.URL.Query().Get("department"),
		Search:     r.URL.Query().Get("search"),
	})
	if err != nil {
		s.internalError(w, "list team members", err)
		return
	}

	tasks, err := s.svc.Tasks.List(r.Context(), task.ListOptions{})
	if err != nil {
		s.internalError(w, "list tasks", err)
		return
	}

	now := s.now()
	rollups := make([]metrics.MemberRollup, 0, len(members))
	for _, m := range members {
		rollups = append(rollups, metrics.PerMemberRollup(m, tasks, now))
	}
	writeJSON(w, http.StatusOK, rollups)
}

func (s *Server) handleCalendarDay(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	_, projects, tasks, err := s.snapshot(r)
	if err != nil {
		s.internalError(w, "load snapshot", err)
		return
	}
	events := metrics.EventsOnDate(projects, tasks, date)
	writeJSON(w, http.StatusOK, map[string]any{"date": date.Format("2006-01-02"), "events": events})
}

func (s *Server) handleCalendarUpcoming(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	_, projects, tasks, err := s.snapshot(r)
	if err != nil {
		s.internalError(w, "load snapshot", err)
		return
	}
	writeJSON(w, http.StatusOK, metrics.UpcomingEvents(projects, tasks, s.now(), days))
}

func (s *Server) handleMemberDashboard(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())

	_, projects, tasks, err := s.snapshot(r)
	if err != nil {
		s.internalError(w, "load snapshot", err)
		return
	}
	writeJSON(w, http.StatusOK, metrics.MemberDashboard(u.ID, projects, tasks, s.now()))
}

func (s *Server) handleMemberActivity(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())

	users, _, tasks, err := s.snapshot(r)
	if err != nil {
		s.internalError(w, "load snapshot", err)
		return
	}
	writeJSON(w, http.StatusOK, metrics.TaskActivity(users, tasks, u.ID, s.now()))
}

func (s *Server) handleMemberTasks(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())

	tasks, err := s.svc.Tasks.List(r.Context(), task.ListOptions{
		AssigneeID: u.ID,
		Search:     r.URL.Query().Get("search"),
	})
	if err != nil {
		s.internalError(w, "list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

type taskStatusRequest struct {
	Status task.Status `json:"status"`
}

// handleTaskStatus transitions a task. Members may only move their own
// tasks; admins may move any.
func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req taskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	existing, err := s.svc.Tasks.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		s.internalError(w, "get task", err)
		return
	}
	if u.Role != user.RoleAdmin && existing.AssigneeID != u.ID {
		writeError(w, http.StatusForbidden, "not your task")
		return
	}

	updated, err := s.svc.Tasks.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, task.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.internalError(w, "update task", err)
		return
	}

	if err := s.svc.Users.Touch(r.Context(), u.ID, s.now()); err != nil {
		s.logger.Warn("failed to record activity", "user", u.ID, "error", err)
	}

	writeJSON(w, http.StatusOK, updated)
}

// handleListProjects lists projects filtered by the status and search query
// params. Repeating status narrows to any of the given values.
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	opts := project.ListOptions{
		Search: r.URL.Query().Get("search"),
	}
	for _, v := range r.URL.Query()["status"] {
		opts.Statuses = append(opts.Statuses, project.Status(v))
	}

	projects, err := s.svc.Projects.List(r.Context(), opts)
	if err != nil {
		s.internalError(w, "list projects", err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.svc.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		s.internalError(w, "get project", err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		s.internalError(w, "delete project", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMemberProjects lists the projects the logged-in user belongs to.
func (s *Server) handleMemberProjects(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())

	projects, err := s.svc.Projects.List(r.Context(), project.ListOptions{
		MemberID: u.ID,
		Search:   r.URL.Query().Get("search"),
	})
	if err != nil {
		s.internalError(w, "list projects", err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req user.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.svc.Users.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.internalError(w, "create user", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req project.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.svc.Projects.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, project.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.internalError(w, "create project", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req project.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.svc.Projects.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, project.ErrProjectNotFound):
			writeError(w, http.StatusNotFound, "project not found")
		case errors.Is(err, project.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.internalError(w, "update project", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// snapshot loads the full dataset for one derivation pass. Every metric in
// a response is computed from this single consistent read.
func (s *Server) snapshot(r *http.Request) ([]user.User, []project.Project, []task.Task, error) {
	users, err := s.svc.Users.List(r.Context(), user.ListOptions{})
	if err != nil {
		return nil, nil, nil, err
	}
	projects, err := s.svc.Projects.List(r.Context(), project.ListOptions{})
	if err != nil {
		return nil, nil, nil, err
	}
	tasks, err := s.svc.Tasks.List(r.Context(), task.ListOptions{})
	if err != nil {
		return nil, nil, nil, err
	}
	return users, projects, tasks, nil
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
