package postgres

const (
	// колонки сессии + хост; порядок совпадает с scanSessionView
	sessionViewColumns = `
		s.id, s.title, s.description, s.host_id, s.status, s.start_time, s.end_time,
		s.max_participants, s.meeting_id, s.meeting_link, s.created_at, s.updated_at,
		COALESCE(h.name, ''), COALESCE(h.role, ''), COALESCE(h.company, ''), COALESCE(h.avatar, '')`

	queryLiveSession = `
		SELECT ` + sessionViewColumns + `,
			(SELECT COUNT(DISTINCT r.user_id) FROM session_registrations r WHERE r.session_id = s.id),
			(SELECT COUNT(*) FROM chat_messages cm WHERE cm.session_id = s.id)
		FROM ama_sessions s
		LEFT JOIN hosts h ON h.id = s.host_id
		WHERE s.status = 'live'
		ORDER BY s.start_time DESC
		LIMIT 1`

	queryUpcomingSessions = `
		SELECT ` + sessionViewColumns + `,
			(SELECT COUNT(DISTINCT r.user_id) FROM session_registrations r WHERE r.session_id = s.id),
			0
		FROM ama_sessions s
		LEFT JOIN hosts h ON h.id = s.host_id
		WHERE s.status = 'upcoming' AND s.start_time > NOW()
		ORDER BY s.start_time ASC`

	queryGetSession = `
		SELECT ` + sessionViewColumns + `,
			(SELECT COUNT(DISTINCT r.user_id) FROM session_registrations r WHERE r.session_id = s.id),
			(SELECT COUNT(*) FROM chat_messages cm WHERE cm.session_id = s.id)
		FROM ama_sessions s
		LEFT JOIN hosts h ON h.id = s.host_id
		WHERE s.id = $1`

	querySessionExists = `SELECT EXISTS(SELECT 1 FROM ama_sessions WHERE id = $1)`

	queryListHosts = `
		SELECT id, name, email, role, company, avatar, bio, created_at
		FROM hosts
		ORDER BY name ASC`

	// Блокируем строку сессии: параллельные регистрации на ту же сессию ждут.
	queryLockSession = `
		SELECT id, title, description, host_id, status, start_time, end_time,
		       max_participants, meeting_id, meeting_link, created_at, updated_at
		FROM ama_sessions
		WHERE id = $1
		FOR UPDATE`

	queryRegistrationExists = `
		SELECT EXISTS(SELECT 1 FROM session_registrations WHERE session_id = $1 AND user_id = $2)`

	queryCountRegistrations = `SELECT COUNT(*) FROM session_registrations WHERE session_id = $1`

	queryInsertRegistration = `
		INSERT INTO session_registrations (session_id, user_id, user_name, user_email, user_role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, registered_at`

	queryListParticipants = `
		SELECT r.user_id, r.user_name, r.user_email, r.registered_at,
		       (h.id IS NOT NULL) AS is_host
		FROM session_registrations r
		LEFT JOIN hosts h ON h.email = r.user_email
		WHERE r.session_id = $1
		ORDER BY r.registered_at ASC, r.id ASC`

	queryInsertMessage = `
		INSERT INTO chat_messages (session_id, user_id, user_name, message, user_role, is_host_message, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, session_id, user_id, user_name, message, user_role, is_host_message, timestamp`

	// новые сверху; в хронологию разворачивает сервис
	queryMessageHistory = `
		SELECT id, session_id, user_id, user_name, message, user_role, is_host_message, timestamp
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2 OFFSET $3`
)
