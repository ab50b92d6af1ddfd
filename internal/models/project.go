package models

// Project represents a portfolio project
type Project struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Thumbnail   string     `json:"thumbnail,omitempty" yaml:"thumbnail"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Category    string     `json:"category" yaml:"category"`
	EmbedURL    string     `json:"embed_url,omitempty" yaml:"embed_url"`
	EmbedType   EmbedType  `json:"embed_type" yaml:"embed_type"`
	SourceURL   string     `json:"source_url,omitempty" yaml:"source_url"`
	LiveURL     string     `json:"live_url,omitempty" yaml:"live_url"`
	ButtonType  ButtonType `json:"button_type" yaml:"button_type"`
	IsLive      bool       `json:"is_live" yaml:"is_live"`
	Featured    bool       `json:"featured" yaml:"featured"`
	Date        string     `json:"date,omitempty" yaml:"date"`
}

// HasEmbed reports whether the project can be opened in an embed viewer
func (p Project) HasEmbed() bool {
	return p.EmbedTarget() != ""
}

// EmbedTarget returns the URL an embed viewer should load.
// The live URL is used when no dedicated embed URL is set.
func (p Project) EmbedTarget() string {
	if p.EmbedURL != "" {
		return p.EmbedURL
	}
	return p.LiveURL
}

// ProjectList wraps the array of projects
type ProjectList struct {
	Projects []Project `json:"projects"`
}
