package models

// Category groups products and carries display metadata.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NameNL      string `json:"name_nl,omitempty"`
	NameFR      string `json:"name_fr,omitempty"`
	NameEN      string `json:"name_en,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
	SortOrder   int    `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// CategoryUpdate is a partial category update; nil fields are left untouched.
type CategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	NameNL      *string `json:"name_nl,omitempty"`
	NameFR      *string `json:"name_fr,omitempty"`
	NameEN      *string `json:"name_en,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (u CategoryUpdate) Apply(c *Category) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.NameNL != nil {
		c.NameNL = *u.NameNL
	}
	if u.NameFR != nil {
		c.NameFR = *u.NameFR
	}
	if u.NameEN != nil {
		c.NameEN = *u.NameEN
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Color != nil {
		c.Color = *u.Color
	}
	if u.Icon != nil {
		c.Icon = *u.Icon
	}
	if u.SortOrder != nil {
		c.SortOrder = *u.SortOrder
	}
	if u.IsActive != nil {
		c.IsActive = *u.IsActive
	}
}
