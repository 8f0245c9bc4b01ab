package handler

import (
	"time"

	"pessoas/internal/contact/models"
)

// ContactResponse is the wire representation of a contact.
type ContactResponse struct {
	ID        string    `json:"id"`
	PersonKey string    `json:"person_key"`
	Type      string    `json:"type"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactListResponse wraps a person's contacts.
type ContactListResponse struct {
	Contacts []ContactResponse `json:"contacts"`
	Count    int               `json:"count"`
}

func toContactResponse(contact *models.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID.String(),
		PersonKey: contact.PersonKey.String(),
		Type:      contact.Type.String(),
		Value:     contact.Value,
		CreatedAt: contact.CreatedAt,
	}
}

func toContactListResponse(contacts []*models.Contact) ContactListResponse {
	out := ContactListResponse{
		Contacts: make([]ContactResponse, 0, len(contacts)),
		Count:    len(contacts),
	}
	for _, contact := range contacts {
		out.Contacts = append(out.Contacts, toContactResponse(contact))
	}
	return out
}
