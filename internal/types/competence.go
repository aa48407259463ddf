package types

import "github.com/education-platform/backend/internal/models"

// URLFunc resolves a stored file key into a public link.
type URLFunc func(key string) string

type MaterialResponse struct {
	ID           uint    `json:"id"`
	MaterialType string  `json:"material_type"`
	Title        string  `json:"title"`
	Link         *string `json:"link"`
	Content      *string `json:"content"`
	File         *string `json:"file"`
}

type ReviewResponse struct {
	ID         uint   `json:"id"`
	Competence uint   `json:"competence"`
	User       uint   `json:"user"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

type CompetenceResponse struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Difficulty  string             `json:"difficulty"`
	IsActive    bool               `json:"is_active"`
	Profession  *uint              `json:"profession"`
	Materials   []MaterialResponse `json:"materials"`
	Reviews     []ReviewResponse   `json:"reviews"`
}

type ProfessionResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func Material(m models.Material, url URLFunc) MaterialResponse {
	resp := MaterialResponse{
		ID:           m.ID,
		MaterialType: m.MaterialType,
		Title:        m.Title,
		Link:         m.Link,
		Content:      m.Content,
	}
	if m.File != nil && *m.File != "" {
		link := url(*m.File)
		resp.File = &link
	}
	return resp
}

func Review(r models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		Competence: r.CompetenceID,
		User:       r.UserID,
		Rating:     r.Rating,
		Comment:    r.Comment,
	}
}

func Reviews(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, Review(r))
	}
	return out
}

func Competence(c models.Competence, url URLFunc) CompetenceResponse {
	materials := make([]MaterialResponse, 0, len(c.Materials))
	for _, m := range c.Materials {
		materials = append(materials, Material(m, url))
	}

	return CompetenceResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Difficulty:  c.Difficulty,
		IsActive:    c.IsActive,
		Profession:  c.ProfessionID,
		Materials:   materials,
		Reviews:     Reviews(c.Reviews),
	}
}

func Competences(list []models.Competence, url URLFunc) []CompetenceResponse {
	out := make([]CompetenceResponse, 0, len(list))
	for _, c := range list {
		out = append(out, Competence(c, url))
	}
	return out
}

func Profession(p models.Profession) ProfessionResponse {
	return ProfessionResponse{ID: p.ID, Name: p.Name}
}

func Professions(list []models.Profession) []ProfessionResponse {
	out := make([]ProfessionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, Profession(p))
	}
	return out
}
