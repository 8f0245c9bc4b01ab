package handler

import (
	"time"

	dedupmodels "pessoas/internal/dedup/models"
	"pessoas/internal/person/models"
)

type PersonResponse struct {
	Key         string               `json:"key"`
	FirstName   string               `json:"first_name"`
	MiddleName  string               `json:"middle_name,omitempty"`
	LastName    string               `json:"last_name"`
	SocialName  string               `json:"social_name,omitempty"`
	FullName    string               `json:"full_name"`
	BirthDate   string               `json:"birth_date,omitempty"`
	Gender      string               `json:"gender,omitempty"`
	Status      string               `json:"status"`
	Identifiers []IdentifierResponse `json:"identifiers"`
	MergedInto  string               `json:"merged_into,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type IdentifierResponse struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type PersonListResponse struct {
	People []*PersonResponse `json:"people"`
}

type DuplicateResponse struct {
	Person *PersonResponse `json:"person"`
	Score  float64         `json:"score"`
	Reason string          `json:"reason"`
}

type DuplicateSearchResponse struct {
	Matches []DuplicateResponse `json:"matches"`
}

// Response mapping functions - convert domain objects to HTTP DTOs

func toPersonResponse(p *models.Person) *PersonResponse {
	resp := &PersonResponse{
		Key:         p.Key.String(),
		FirstName:   p.Name.First,
		MiddleName:  p.Name.Middle,
		LastName:    p.Name.Last,
		SocialName:  p.Name.Social,
		FullName:    p.Name.Full(),
		BirthDate:   p.BirthDate.String(),
		Gender:      p.Gender.String(),
		Status:      p.Status.String(),
		Identifiers: make([]IdentifierResponse, 0, len(p.Identifiers)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, ident := range p.Identifiers {
		resp.Identifiers = append(resp.Identifiers, IdentifierResponse{
			Type:  string(ident.Type),
			Value: ident.Value,
		})
	}
	if !p.MergedInto.IsNil() {
		resp.MergedInto = p.MergedInto.String()
	}
	return resp
}

func toPersonListResponse(people []*models.Person) *PersonListResponse {
	resp := &PersonListResponse{People: make([]*PersonResponse, 0, len(people))}
	for _, p := range people {
		resp.People = append(resp.People, toPersonResponse(p))
	}
	return resp
}

func toDuplicateSearchResponse(results []dedupmodels.DuplicateResult) *DuplicateSearchResponse {
	resp := &DuplicateSearchResponse{Matches: make([]DuplicateResponse, 0, len(results))}
	for _, r := range results {
		resp.Matches = append(resp.Matches, DuplicateResponse{
			Person: toPersonResponse(r.Person),
			Score:  r.Score,
			Reason: string(r.Reason),
		})
	}
	return resp
}
