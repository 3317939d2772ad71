package models

// Pizza represents a pizza with its properties
type Pizza struct {
	ID          int    `json:"id" example:"1"`
	Name        string `json:"name" example:"Margherita"`
	Description string `json:"description" example:"Classic"`
}
