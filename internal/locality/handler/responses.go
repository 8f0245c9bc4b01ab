package handler

import "pessoas/internal/locality/models"

// LocalityResponse is the wire representation of a locality.
type LocalityResponse struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// LocalityListResponse wraps a set of localities.
type LocalityListResponse struct {
	Localities []LocalityResponse `json:"localities"`
	Count      int                `json:"count"`
}

func toLocalityResponse(locality *models.Locality) LocalityResponse {
	resp := LocalityResponse{
		ID:   locality.ID.String(),
		Type: locality.Type.String(),
		Code: locality.Code,
		Name: locality.Name,
	}
	if !locality.ParentID.IsNil() {
		resp.ParentID = locality.ParentID.String()
	}
	return resp
}

func toLocalityListResponse(localities []*models.Locality) LocalityListResponse {
	out := LocalityListResponse{
		Localities: make([]LocalityResponse, 0, len(localities)),
		Count:      len(localities),
	}
	for _, locality := range localities {
		out.Localities = append(out.Localities, toLocalityResponse(locality))
	}
	return out
}
