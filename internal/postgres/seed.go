package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

type seedHost struct {
	Name, Email, Role, Company, Avatar, Bio string
}

type seedSession struct {
	Title, Description, HostEmail, Status string
	StartOffset                           time.Duration
	MaxParticipants                       int
	MeetingID, MeetingLink                string
}

type seedRegistration struct {
	MeetingID, UserID, UserName, UserEmail, UserRole string
}

type seedMessage struct {
	UserID, UserName, Message, UserRole string
	IsHost                              bool
	Ago                                 time.Duration
}

var (
	seedHosts = []seedHost{
		{"Priyanka Sharma", "priyanka.sharma@meta.com", "Product Manager", "Meta", "P",
			"Experienced PM with 8+ years in tech, specializing in social media and AI products."},
		{"Arjun Patel", "arjun.patel@google.com", "Software Engineer", "Google", "A",
			"Google SDE with expertise in system design and algorithms. CU Alumni 2019."},
		{"Sneha Patel", "sneha.patel@microsoft.com", "Data Scientist", "Microsoft", "S",
			"ML/AI specialist with publications in top-tier conferences. Helps students with research projects."},
		{"Rohit Gupta", "rohit.gupta@google.com", "Software Engineer", "Google", "R",
			"Google SDE with expertise in search infrastructure. Regularly conducts mock interviews."},
	}

	seedSessions = []seedSession{
		{
			Title:           "How I got into Meta as a Product Manager",
			Description:     "Deep dive into the PM interview process at Meta, including case studies, behavioral questions, and tips for standing out in a competitive field.",
			HostEmail:       "priyanka.sharma@meta.com",
			Status:          "live",
			StartOffset:     -15 * time.Minute,
			MaxParticipants: 200,
			MeetingID:       "meta-pm-ama-2024",
			MeetingLink:     "https://meet.google.com/cnb-epqt-mjc",
		},
		{
			Title:           "My Journey from CU to Google",
			Description:     "Deep dive into Google's interview process, system design rounds, and tips for final year preparation.",
			HostEmail:       "arjun.patel@google.com",
			Status:          "upcoming",
			StartOffset:     24 * time.Hour,
			MaxParticipants: 150,
			MeetingID:       "cu-to-google-2024",
			MeetingLink:     "https://meet.google.com/cnb-epqt-mjc",
		},
		{
			Title:           "Data Science Career Roadmap",
			Description:     "From beginner to advanced: ML projects, internships, and breaking into top tech companies.",
			HostEmail:       "sneha.patel@microsoft.com",
			Status:          "upcoming",
			StartOffset:     15 * 24 * time.Hour,
			MaxParticipants: 120,
			MeetingID:       "ds-roadmap-2024",
			MeetingLink:     "https://meet.google.com/cnb-epqt-mjc",
		},
	}

	seedRegistrations = []seedRegistration{
		{"meta-pm-ama-2024", "user-001", "Rahul Sharma", "rahul.sharma@cu.ac.in", "Student"},
		{"meta-pm-ama-2024", "user-002", "Sneha Kumar", "sneha.kumar@cu.ac.in", "Student"},
		{"cu-to-google-2024", "user-003", "Karan Singh", "karan.singh@cu.ac.in", "Student"},
		{"cu-to-google-2024", "user-004", "Shweta Reddy", "shweta.reddy@cu.ac.in", "Student"},
	}

	// чат live-сессии
	seedMessages = []seedMessage{
		{"user-001", "Rahul", "What skills are most important for PM roles?", "Student", false, 2 * time.Minute},
		{"host-001", "Priyanka (Host)", "Great question! Focus on data analysis, user empathy, and technical understanding.", "Product Manager", true, time.Minute},
		{"user-002", "Sneha", "How do you prepare for PM case studies?", "Student", false, 30 * time.Second},
	}
)

const (
	querySeedHost = `
		INSERT INTO hosts (name, email, role, company, avatar, bio)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING`
	querySeedSession = `
		INSERT INTO ama_sessions (title, description, host_id, status, start_time, max_participants, meeting_id, meeting_link)
		SELECT $1::varchar, $2::text, h.id, $4::varchar, $5::timestamptz, $6::int, $7::varchar, $8::text
		FROM hosts h WHERE h.email = $3
		ON CONFLICT (meeting_id) DO NOTHING`
	querySeedRegistration = `
		INSERT INTO session_registrations (session_id, user_id, user_name, user_email, user_role)
		SELECT s.id, $2::varchar, $3::varchar, $4::varchar, $5::varchar
		FROM ama_sessions s WHERE s.meeting_id = $1
		ON CONFLICT (session_id, user_id) DO NOTHING`
	querySeedMessage = `
		INSERT INTO chat_messages (session_id, user_id, user_name, message, user_role, is_host_message, timestamp)
		SELECT s.id, $2::varchar, $3::varchar, $4::text, $5::varchar, $6::boolean, $7::timestamptz
		FROM ama_sessions s
		WHERE s.meeting_id = $1
		  AND NOT EXISTS (SELECT 1 FROM chat_messages cm WHERE cm.session_id = s.id AND cm.message = $4)`
)

// Seed заливает демо-данные одной транзакцией; повторный запуск ничего не дублирует.
func Seed(ctx context.Context, db txBeginner, now time.Time) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	b := &pgx.Batch{}
	for _, h := range seedHosts {
		b.Queue(querySeedHost, h.Name, h.Email, h.Role, h.Company, h.Avatar, h.Bio)
	}
	for _, s := range seedSessions {
		b.Queue(querySeedSession, s.Title, s.Description, s.HostEmail, s.Status,
			now.Add(s.StartOffset), s.MaxParticipants, s.MeetingID, s.MeetingLink)
	}
	for _, r := range seedRegistrations {
		b.Queue(querySeedRegistration, r.MeetingID, r.UserID, r.UserName, r.UserEmail, r.UserRole)
	}
	live := seedSessions[0].MeetingID
	for _, m := range seedMessages {
		b.Queue(querySeedMessage, live, m.UserID, m.UserName, m.Message, m.UserRole, m.IsHost, now.Add(-m.Ago))
	}

	if err := tx.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("seed batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	slog.InfoContext(ctx, "seed completed",
		slog.Int("hosts", len(seedHosts)),
		slog.Int("sessions", len(seedSessions)),
		slog.Int("registrations", len(seedRegistrations)),
		slog.Int("messages", len(seedMessages)),
	)
	return nil
}
