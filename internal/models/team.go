package models

// TeamMember populates the reassign selection list.
type TeamMember struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Available bool     `json:"available"`
	Expertise []string `json:"expertise"`
}
