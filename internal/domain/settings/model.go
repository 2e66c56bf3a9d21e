package settings

// VisualConfig - тема пользователя; сервер только хранит значения
type VisualConfig struct {
	UserID          int64
	PrimaryColor    string
	SecondaryColor  string
	AccentColor     string
	BackgroundColor string
	CardColor       string
	TextColor       string
	LightTextColor  string
	BorderColor     string
	MainFont        string
	FontSize        string
}

type SiteConfig struct {
	SiteName              string
	AllowNewRegistrations bool
}
