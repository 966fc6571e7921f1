package models

// CategoryNode is a category of the two-level tree served to clients.
// Children of a child node are always empty.
type CategoryNode struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	URL      string         `json:"url,omitempty"`
	Children []CategoryNode `json:"children,omitempty"`
}
