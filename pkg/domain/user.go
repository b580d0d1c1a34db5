package domain

// Language is a UI language supported by the application
type Language string

// supported languages
const (
	LanguageEN Language = "en"
	LanguageDE Language = "de"
)

// Valid reports whether the language is one of the supported values
func (l Language) Valid() bool {
	return l == LanguageEN || l == LanguageDE
}

// Category is a news category tag
type Category string

// news categories
const (
	CategoryGeneral       Category = "general"
	CategoryEntertainment Category = "entertainment"
	CategorySports        Category = "sports"
	CategoryPolitics      Category = "politics"
	CategoryScience       Category = "science"
	CategoryTechnology    Category = "technology"
)

// Categories returns all known category tags in display order
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryEntertainment,
		CategorySports,
		CategoryPolitics,
		CategoryScience,
		CategoryTechnology,
	}
}

// Valid reports whether the category is one of the known tags
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Preferences holds per-user reading preferences
type Preferences struct {
	Language   Language   `json:"language"`
	Categories []Category `json:"categories"`
}

// Valid reports whether the preference set is complete: a supported
// language and at least one known category
func (p Preferences) Valid() bool {
	if !p.Language.Valid() || len(p.Categories) == 0 {
		return false
	}
	for _, c := range p.Categories {
		if !c.Valid() {
			return false
		}
	}
	return true
}

// User is the public identity record, email is the unique identifier.
// Credentials are kept separately in the registered-user directory and
// never leave the session store.
type User struct {
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Preferences Preferences `json:"preferences"`
}
