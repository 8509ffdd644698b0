// Package cardapi is the client for the downstream card catalog REST
// API. The API is an external collaborator consumed strictly through
// its request/response contract; validation of heuristic output is its
// responsibility, and a 400 response is a routine per-item outcome.
package cardapi

import "github.com/spellforge/cardcrawl/internal/domain"

// AuthRequest is the login request body.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the account registration request body.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// AuthResponse is the login response body.
type AuthResponse struct {
	Token string `json:"token"`
}

// CreateCardRequest is the card creation request body. Field names
// follow the catalog API contract: the category travels as "type" and
// the equipment slot as "slot".
type CreateCardRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Rarity      domain.Rarity         `json:"rarity"`
	Price       *int                  `json:"price,omitempty"`
	Weight      *float64              `json:"weight,omitempty"`
	Properties  []string              `json:"properties,omitempty"`
	Type        string                `json:"type,omitempty"`
	Slot        *domain.EquipmentSlot `json:"slot,omitempty"`
	Attunement  *string               `json:"attunement,omitempty"`
	Source      string                `json:"source,omitempty"`
}

// Card is a stored catalog record as returned by the API.
type Card struct {
	ID         string        `json:"id"`
	CardNumber string        `json:"card_number"`
	Name       string        `json:"name"`
	Rarity     domain.Rarity `json:"rarity"`
	Type       string        `json:"type"`
	WeaponType *string       `json:"weapon_type"`
}

// ListCardsResponse is the card listing response body.
type ListCardsResponse struct {
	Cards []Card `json:"cards"`
	Total int    `json:"total"`
}

// UpdateWeaponTypeRequest sets the structured weapon type on a card.
type UpdateWeaponTypeRequest struct {
	WeaponType string `json:"weapon_type"`
}

// NewCreateCardRequest maps a pipeline item onto the API contract.
func NewCreateCardRequest(item *domain.Item) CreateCardRequest {
	return CreateCardRequest{
		Name:        item.Name,
		Description: item.Description,
		Rarity:      item.Rarity,
		Price:       item.Price,
		Weight:      item.Weight,
		Properties:  item.Properties,
		Type:        item.ItemType,
		Slot:        item.Slot,
		Attunement:  item.Attunement,
		Source:      item.Source,
	}
}
