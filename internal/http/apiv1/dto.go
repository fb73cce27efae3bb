package apiv1

// CategoryRequest is the payload of POST /categories. A missing is_active means active.
type CategoryRequest struct {
	Name        string `json:"name"`
	NameNL      string `json:"name_nl,omitempty"`
	NameFR      string `json:"name_fr,omitempty"`
	NameEN      string `json:"name_en,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// totalCountHeader carries the unpaginated total of list routes.
const totalCountHeader = "X-Total-Count"
