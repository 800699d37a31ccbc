package domain

import "time"

type Host struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	Company   string    `db:"company"`
	Avatar    string    `db:"avatar"`
	Bio       *string   `db:"bio"`
	CreatedAt time.Time `db:"created_at"`
}

type HostSummary struct {
	Name    string
	Role    string
	Company string
	Avatar  string
}
