package handler

import (
	"time"

	"pessoas/internal/address/models"
)

// AddressResponse is the wire representation of an address.
type AddressResponse struct {
	ID         string    `json:"id"`
	PersonKey  string    `json:"person_key"`
	Type       string    `json:"type"`
	Street     string    `json:"street"`
	Number     string    `json:"number,omitempty"`
	Complement string    `json:"complement,omitempty"`
	District   string    `json:"district,omitempty"`
	LocalityID string    `json:"locality_id,omitempty"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AddressListResponse wraps a person's addresses.
type AddressListResponse struct {
	Addresses []AddressResponse `json:"addresses"`
	Count     int               `json:"count"`
}

func toAddressResponse(address *models.Address) AddressResponse {
	resp := AddressResponse{
		ID:         address.ID.String(),
		PersonKey:  address.PersonKey.String(),
		Type:       address.Type.String(),
		Street:     address.Street,
		Number:     address.Number,
		Complement: address.Complement,
		District:   address.District,
		PostalCode: address.PostalCode,
		CreatedAt:  address.CreatedAt,
		UpdatedAt:  address.UpdatedAt,
	}
	if !address.LocalityID.IsNil() {
		resp.LocalityID = address.LocalityID.String()
	}
	return resp
}

func toAddressListResponse(addresses []*models.Address) AddressListResponse {
	out := AddressListResponse{
		Addresses: make([]AddressResponse, 0, len(addresses)),
		Count:     len(addresses),
	}
	for _, address := range addresses {
		out.Addresses = append(out.Addresses, toAddressResponse(address))
	}
	return out
}
