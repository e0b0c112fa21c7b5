// models/property.go
package models

import "time"

// Property is a listed home owned by exactly one agent. AgentID is
// immutable after creation.
type Property struct {
	ID          string    `bson:"id" json:"id"`
	AgentID     string    `bson:"agentId" json:"agentId"`
	Title       string    `bson:"title" json:"title"`
	Address     string    `bson:"address" json:"address"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64   `bson:"price" json:"price"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	// ImagePublicID is set only for images we host ourselves, so deletion
	// can clean up the stored asset. Absent for caller-supplied URLs.
	ImagePublicID string    `bson:"imagePublicId,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// PropertySummary is the projection embedded in enriched slot responses.
type PropertySummary struct {
	ID      string  `bson:"id" json:"id"`
	Title   string  `bson:"title" json:"title"`
	Address string  `bson:"address" json:"address"`
	Price   float64 `bson:"price" json:"price"`
	Image   string  `bson:"image,omitempty" json:"image,omitempty"`
}

// Summary returns the embeddable projection of a property.
func (p *Property) Summary() PropertySummary {
	return PropertySummary{ID: p.ID, Title: p.Title, Address: p.Address, Price: p.Price, Image: p.Image}
}

// PropertyWithAgent pairs a property with its owning agent's public details
// for the public listing endpoints.
type PropertyWithAgent struct {
	Property `bson:",inline"`
	Agent    *UserSummary `bson:"agent,omitempty" json:"agent,omitempty"`
}
