package games

// Status mirrors the upstream lifecycle states for a hosted session.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusUnapproved Status = "unapproved"
	StatusCompleted  Status = "completed"
)

// Participant is a confirmed player on a game's roster. Name and avatar are
// optional; a bare id is a valid participant.
type Participant struct {
	ID        string  `json:"id"`
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Record is the authoritative upstream representation of a hosted session.
// Optional wire fields are pointers so absent and empty stay distinguishable.
type Record struct {
	ID                 string        `json:"id"`
	OrganiserID        string        `json:"organiser_id"`
	Name               string        `json:"name"`
	Venue              string        `json:"venue"`
	CitySlug           string        `json:"city_slug"`
	SportCode          string        `json:"sport_code"`
	Date               string        `json:"date"`
	StartTime          string        `json:"start_time"`
	EndTime            string        `json:"end_time"`
	Skill              string        `json:"skill"`
	Gender             string        `json:"gender"`
	Players            int           `json:"players"`
	Description        *string       `json:"description,omitempty"`
	Rules              *string       `json:"rules,omitempty"`
	Frequency          string        `json:"frequency"`
	Price              *float64      `json:"price,omitempty"`
	IsPrivate          bool          `json:"is_private"`
	Cancellation       string        `json:"cancellation"`
	TeamSheet          bool          `json:"team_sheet"`
	ParticipantUserIDs []string      `json:"participant_user_ids"`
	Participants       []Participant `json:"participants"`
	CreatedByUserID    *string       `json:"created_by_user_id"`
	Status             Status        `json:"status"`
	CreatedAt          string        `json:"created_at"`
	UpdatedAt          string        `json:"updated_at"`
}

// ParticipantCount prefers the rich roster and falls back to the bare id list.
func (r Record) ParticipantCount() int {
	if len(r.Participants) > 0 {
		return len(r.Participants)
	}
	return len(r.ParticipantUserIDs)
}

// HasParticipant reports whether the given user id appears on the
// server-confirmed roster.
func (r Record) HasParticipant(userID string) bool {
	if userID == "" {
		return false
	}
	for _, p := range r.Participants {
		if p.ID == userID {
			return true
		}
	}
	for _, id := range r.ParticipantUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Booking is the upstream receipt returned by a join submission.
type Booking struct {
	ID       string  `json:"id"`
	GameID   string  `json:"game_id"`
	UserID   string  `json:"user_id"`
	JoinedAt string  `json:"joined_at"`
	Notes    *string `json:"notes"`
}
