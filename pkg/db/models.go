package db

import "time"

// Activity types. Sign-ins and sign-outs form duty sessions; training and
// duty are single fire-and-forget events counted by the monthly stats.
const (
	TypeSignIn   = "signin"
	TypeSignOut  = "signout"
	TypeTraining = "training"
	TypeDuty     = "duty"
)

// Rescue intervention levels.
const (
	RescueALS = "ALS"
	RescueBLS = "BLS"
	RescuePUA = "PUA"
)

// User is a registered volunteer.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}

// Activity is one attendance event. Rows are append-only; the timestamp is
// assigned by the store at write time and is always UTC. The only mutation
// the system ever performs is the sign-in supersession delete.
type Activity struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip,omitempty"`
}

// Rescue is one ambulance case record. Created once on submission, never
// edited.
type Rescue struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"userId"`
	CaseType        string     `json:"caseType"`
	CaseSubtype     string     `json:"caseSubtype,omitempty"`
	Treatment       string     `json:"treatment,omitempty"`
	Hospital        string     `json:"hospital,omitempty"`
	RescueType      string     `json:"rescueType,omitempty"`
	StartTime       *time.Time `json:"startTime,omitempty"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	WoundDimensions string     `json:"woundDimensions,omitempty"`
	RescueAddress   string     `json:"rescueAddress,omitempty"`
	Timestamp       time.Time  `json:"timestamp"`
}

// NewRescue carries the caller-supplied fields of a rescue record; the store
// assigns ID and timestamp.
type NewRescue struct {
	UserID          int64
	CaseType        string
	CaseSubtype     string
	Treatment       string
	Hospital        string
	RescueType      string
	StartTime       *time.Time
	EndTime         *time.Time
	WoundDimensions string
	RescueAddress   string
}
