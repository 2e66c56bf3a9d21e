package settings

type VisualInput struct {
	PrimaryColor    string `json:"primary_color" validate:"max=32"`
	SecondaryColor  string `json:"secondary_color" validate:"max=32"`
	AccentColor     string `json:"accent_color" validate:"max=32"`
	BackgroundColor string `json:"background_color" validate:"max=32"`
	CardColor       string `json:"card_color" validate:"max=32"`
	TextColor       string `json:"text_color" validate:"max=32"`
	LightTextColor  string `json:"light_text_color" validate:"max=32"`
	BorderColor     string `json:"border_color" validate:"max=32"`
	MainFont        string `json:"main_font" validate:"max=100"`
	FontSize        string `json:"font_size" validate:"max=16"`
}

type SiteInput struct {
	SiteName              string `json:"site_name" validate:"required,max=100"`
	AllowNewRegistrations *bool  `json:"allow_new_registrations" validate:"required"`
}
