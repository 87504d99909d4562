package domain

// Subject is the memorialized individual a wall is deployed for.
// Everything except Seeds is presentational content served as-is.
type Subject struct {
	FullName    string    `json:"fullName" yaml:"fullName"`
	Lifespan    string    `json:"lifespan" yaml:"lifespan"`
	PortraitURL string    `json:"portraitUrl" yaml:"portraitUrl"`
	About       About     `json:"about" yaml:"about"`
	Favorites   Favorites `json:"favorites" yaml:"favorites"`

	// Seeds are sample tributes bundled with the page. They are merged into
	// the feed on every load but never written to the persistence facility.
	Seeds []Tribute `json:"-" yaml:"seeds"`
}

// About is the biography tab.
type About struct {
	Heading    string   `json:"heading" yaml:"heading"`
	Paragraphs []string `json:"paragraphs" yaml:"paragraphs"`
}

// Favorites is the "favorite things" tab.
type Favorites struct {
	PageTitle  string             `json:"pageTitle" yaml:"pageTitle"`
	IntroText  string             `json:"introText,omitempty" yaml:"introText"`
	Categories []FavoriteCategory `json:"categories" yaml:"categories"`
}

// FavoriteCategory groups favorite items under an icon key such as "Music2".
type FavoriteCategory struct {
	ID    string         `json:"id" yaml:"id"`
	Title string         `json:"title" yaml:"title"`
	Icon  string         `json:"icon" yaml:"icon"`
	Items []FavoriteItem `json:"items" yaml:"items"`
}

// FavoriteItem is a single entry within a category.
type FavoriteItem struct {
	Name          string `json:"name" yaml:"name"`
	SecondaryText string `json:"secondaryText,omitempty" yaml:"secondaryText"`
	Note          string `json:"note,omitempty" yaml:"note"`
}
