package models

import "time"

// MobilityAccount is one external user's access-account registration.
// It is independent of any installation.
type MobilityAccount struct {
	ID        string        `json:"id"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	EndUser   string        `json:"end_user"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (a MobilityAccount) SearchFields() []string {
	return []string{a.FirstName, a.LastName, a.Email, a.EndUser, string(a.Status)}
}

func (a MobilityAccount) StatusTag() string {
	return string(a.Status)
}
