package model

// Skill categories offered by the admin UI. Any other non-empty label is a
// custom category, entered when the admin picks CategoryOther.
const (
	CategoryFrontend = "Frontend"
	CategoryBackend  = "Backend"
	Category3D       = "3D-Graphics"
	CategoryTools    = "Tools"
	CategoryOther    = "Other"
)

// SkillCategories lists the built-in categories in display order.
var SkillCategories = []string{
	CategoryFrontend,
	CategoryBackend,
	Category3D,
	CategoryTools,
	CategoryOther,
}

// Skill is one entry of the skills section. Order is a dense rank within
// Category, not across the whole table.
type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency int    `json:"proficiency"`
	Icon        string `json:"icon,omitempty"`
	Order       int    `json:"order"`
}
