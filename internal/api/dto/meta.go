package dto

// Fieldset one titled group of form fields.
type Fieldset struct {
	Title       string   `json:"title"`
	Fields      []string `json:"fields"`
	Description string   `json:"description,omitempty"`
	Collapsed   bool     `json:"collapsed"`
}

// ModelAdminMeta configuration consumed by the generic admin form renderer.
type ModelAdminMeta struct {
	Model          string            `json:"model"`
	VerboseName    string            `json:"verbose_name"`
	ListDisplay    []string          `json:"list_display"`
	ListFilter     []string          `json:"list_filter"`
	SearchFields   []string          `json:"search_fields"`
	Ordering       []string          `json:"ordering"`
	ReadonlyFields []string          `json:"readonly_fields"`
	Prepopulated   map[string]string `json:"prepopulated_fields,omitempty"`
	Fieldsets      []Fieldset        `json:"fieldsets"`
	Choices        map[string]any    `json:"choices,omitempty"`
	CanAdd         bool              `json:"can_add"`
	CanDelete      bool              `json:"can_delete"`
}
