package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/uniconnect/ama-service/internal/domain"
	"github.com/uniconnect/ama-service/internal/service"
	"github.com/uniconnect/ama-service/pkg/httputil"
)

type SessionSvc interface {
	Live(ctx context.Context) (*domain.SessionView, bool, error)
	Upcoming(ctx context.Context) ([]domain.SessionView, error)
	Get(ctx context.Context, id int64) (*domain.SessionView, error)
	Hosts(ctx context.Context) ([]domain.Host, error)
	MeetingLink(sess domain.Session) string
}

type RegistrationSvc interface {
	Register(ctx context.Context, sessionID int64, in service.RegisterInput) (*service.Registered, error)
	Participants(ctx context.Context, sessionID int64) ([]domain.Participant, error)
}

type ChatSvc interface {
	History(ctx context.Context, sessionID int64, limit, offset int) ([]domain.ChatMessage, error)
}

type HighlightSvc interface {
	ForSession(ctx context.Context, sessionID int64) (domain.Highlights, error)
}

type EmailSvc interface {
	Generate(ctx context.Context, in service.EmailInput) (string, error)
}

type Handler struct {
	sessions      SessionSvc
	registrations RegistrationSvc
	chat          ChatSvc
	highlights    HighlightSvc
	email         EmailSvc
}

func NewHandler(sessions SessionSvc, registrations RegistrationSvc, chat ChatSvc, highlights HighlightSvc, email EmailSvc) *Handler {
	return &Handler{
		sessions:      sessions,
		registrations: registrations,
		chat:          chat,
		highlights:    highlights,
		email:         email,
	}
}

func sessionID(r *http.Request) (int64, error) {
	return domain.ParseSessionID(chi.URLParam(r, "sessionId"))
}

// GET /api/ama/live
func (h *Handler) LiveSession(w http.ResponseWriter, r *http.Request) {
	v, ok, err := h.sessions.Live(r.Context())
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	if !ok {
		httputil.OK(w, LiveResponse{IsLive: false, Message: "No live sessions currently"})
		return
	}

	httputil.OK(w, LiveResponse{
		IsLive: true,
		Session: &LiveSessionItem{
			ID:              v.ID,
			Title:           v.Title,
			Description:     v.Description,
			Host:            hostItem(v.Host),
			StartTime:       v.StartTime,
			MeetingLink:     h.sessions.MeetingLink(v.Session),
			RegisteredCount: v.RegisteredCount,
			MessageCount:    v.MessageCount,
			Status:          string(v.Status),
		},
	})
}

// GET /api/ama/upcoming
func (h *Handler) UpcomingSessions(w http.ResponseWriter, r *http.Request) {
	list, err := h.sessions.Upcoming(r.Context())
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.OK(w, UpcomingResponse{Sessions: upcomingItems(list, h.sessions.MeetingLink)})
}

// GET /api/ama/sessions/{sessionId}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	v, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}

	httputil.OK(w, SessionItem{
		ID:              v.ID,
		Title:           v.Title,
		Description:     v.Description,
		Status:          string(v.Status),
		StartTime:       v.StartTime,
		EndTime:         v.EndTime,
		MaxParticipants: v.MaxParticipants,
		MeetingLink:     h.sessions.MeetingLink(v.Session),
		Host:            hostItem(v.Host),
	})
}

// POST /api/ama/register/{sessionId}
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	var req service.RegisterInput
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}

	res, err := h.registrations.Register(r.Context(), id, req)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}

	httputil.L(r.Context()).Info("user registered",
		"session_id", res.Session.ID, "user_id", res.Registration.UserID)
	httputil.JSON(w, http.StatusCreated, RegisterResponse{
		Success: true,
		Message: "Successfully registered for session",
		Session: RegisteredSession{
			ID:          res.Session.ID,
			Title:       res.Session.Title,
			StartTime:   res.Session.StartTime,
			MeetingLink: res.MeetingLink,
		},
	})
}

// GET /api/ama/highlights/{sessionId}
func (h *Handler) Highlights(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	hl, err := h.highlights.ForSession(r.Context(), id)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.OK(w, HighlightsResponse{Highlights: hl})
}

// GET /api/ama/hosts
func (h *Handler) Hosts(w http.ResponseWriter, r *http.Request) {
	list, err := h.sessions.Hosts(r.Context())
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.OK(w, HostsResponse{Hosts: hostDetails(list)})
}

// GET /api/chat/messages/{sessionId}?limit=&offset=
func (h *Handler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	// кривые limit/offset молча заменяются значениями по умолчанию
	limit, offset := 0, 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			offset = n
		}
	}

	list, err := h.chat.History(r.Context(), id, limit, offset)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.OK(w, ChatHistoryResponse{Messages: chatItems(list)})
}

// GET /api/chat/session/{sessionId}
func (h *Handler) ChatSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	v, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.OK(w, ChatSessionResponse{
		ID:        v.ID,
		Title:     v.Title,
		Status:    string(v.Status),
		StartTime: v.StartTime,
		Host:      HostItem{Name: v.Host.Name, Role: v.Host.Role, Company: v.Host.Company},
	})
}

// GET /api/chat/participants/{sessionId}
func (h *Handler) Participants(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	list, err := h.registrations.Participants(r.Context(), id)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.OK(w, ParticipantsResponse{Participants: participantItems(list)})
}

// POST /api/chat/typing: HTTP-заглушка для клиентов без websocket.
func (h *Handler) Typing(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, SuccessResponse{Success: true})
}

// POST /api/gemini/generate-email
func (h *Handler) GenerateEmail(w http.ResponseWriter, r *http.Request) {
	var req service.EmailInput
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	email, err := h.email.Generate(r.Context(), req)
	if err != nil {
		httputil.Error(r.Context(), w, err)
		return
	}
	httputil.OK(w, EmailResponse{Success: true, Email: email, Message: "Email generated successfully"})
}
