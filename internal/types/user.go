package types

import "github.com/education-platform/backend/internal/models"

// MarkedEntry is one marked competence inside a user payload.
type MarkedEntry struct {
	ID         uint   `json:"id"`
	Competence uint   `json:"competence"`
	Name       string `json:"name"`
}

type UserAdminResponse struct {
	ID          uint          `json:"id"`
	IsActive    bool          `json:"is_active"`
	IsStaff     bool          `json:"is_staff"`
	IsSuperuser bool          `json:"is_superuser"`
	Email       string        `json:"email"`
	Profession  *uint         `json:"profession"`
	Username    string        `json:"username"`
	Competence  []MarkedEntry `json:"competence"`
}

// UserPublicResponse hides the email and staff flag.
type UserPublicResponse struct {
	ID          uint          `json:"id"`
	IsActive    bool          `json:"is_active"`
	IsSuperuser bool          `json:"is_superuser"`
	Profession  *uint         `json:"profession"`
	Username    string        `json:"username"`
	Competence  []MarkedEntry `json:"competence"`
}

type SelfResponse struct {
	ID          uint          `json:"id"`
	Email       string        `json:"email"`
	Username    string        `json:"username"`
	IsActive    bool          `json:"is_active"`
	IsSuperuser bool          `json:"is_superuser"`
	Profession  *uint         `json:"profession"`
	Competence  []MarkedEntry `json:"competence"`
}

type RegisterResponse struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Profession *uint  `json:"profession"`
}

type MarkResponse struct {
	ID         uint `json:"id"`
	User       uint `json:"user"`
	Competence uint `json:"competence"`
}

type AccessResponse struct {
	Access string `json:"access"`
}

func MarkedEntries(marks []models.MarkedCompetence) []MarkedEntry {
	out := make([]MarkedEntry, 0, len(marks))
	for _, m := range marks {
		out = append(out, MarkedEntryOf(m))
	}
	return out
}

func MarkedEntryOf(m models.MarkedCompetence) MarkedEntry {
	return MarkedEntry{
		ID:         m.ID,
		Competence: m.CompetenceID,
		Name:       m.Competence.Name,
	}
}

func UserAdmin(u models.User) UserAdminResponse {
	return UserAdminResponse{
		ID:          u.ID,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		Email:       u.Email,
		Profession:  u.ProfessionID,
		Username:    u.Username,
		Competence:  MarkedEntries(u.MarkedCompetences),
	}
}

func UsersAdmin(users []models.User) []UserAdminResponse {
	out := make([]UserAdminResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserAdmin(u))
	}
	return out
}

func UserPublic(u models.User) UserPublicResponse {
	return UserPublicResponse{
		ID:          u.ID,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		Profession:  u.ProfessionID,
		Username:    u.Username,
		Competence:  MarkedEntries(u.MarkedCompetences),
	}
}

func UsersPublic(users []models.User) []UserPublicResponse {
	out := make([]UserPublicResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserPublic(u))
	}
	return out
}

func Self(u models.User) SelfResponse {
	return SelfResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		Profession:  u.ProfessionID,
		Competence:  MarkedEntries(u.MarkedCompetences),
	}
}

func Registered(u models.User) RegisterResponse {
	return RegisterResponse{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		Profession: u.ProfessionID,
	}
}

func Marks(marks []models.MarkedCompetence) []MarkResponse {
	out := make([]MarkResponse, 0, len(marks))
	for _, m := range marks {
		out = append(out, MarkResponse{ID: m.ID, User: m.UserID, Competence: m.CompetenceID})
	}
	return out
}
