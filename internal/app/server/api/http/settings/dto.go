package settings

import "babyjournal/internal/domain/settings"

type visualInput struct {
	Body visualBody
}

// visualBody - поля темы; сервер хранит значения как есть
type visualBody struct {
	PrimaryColor    string `json:"primary_color" required:"false" example:"#f8bbd0"`
	SecondaryColor  string `json:"secondary_color" required:"false"`
	AccentColor     string `json:"accent_color" required:"false"`
	BackgroundColor string `json:"background_color" required:"false"`
	CardColor       string `json:"card_color" required:"false"`
	TextColor       string `json:"text_color" required:"false"`
	LightTextColor  string `json:"light_text_color" required:"false"`
	BorderColor     string `json:"border_color" required:"false"`
	MainFont        string `json:"main_font" required:"false" example:"Nunito"`
	FontSize        string `json:"font_size" required:"false" example:"16px"`
}

func (b visualBody) toDomain() settings.VisualInput {
	return settings.VisualInput{
		PrimaryColor:    b.PrimaryColor,
		SecondaryColor:  b.SecondaryColor,
		AccentColor:     b.AccentColor,
		BackgroundColor: b.BackgroundColor,
		CardColor:       b.CardColor,
		TextColor:       b.TextColor,
		LightTextColor:  b.LightTextColor,
		BorderColor:     b.BorderColor,
		MainFont:        b.MainFont,
		FontSize:        b.FontSize,
	}
}

func toVisualBody(c settings.VisualConfig) visualBody {
	return visualBody{
		PrimaryColor:    c.PrimaryColor,
		SecondaryColor:  c.SecondaryColor,
		AccentColor:     c.AccentColor,
		BackgroundColor: c.BackgroundColor,
		CardColor:       c.CardColor,
		TextColor:       c.TextColor,
		LightTextColor:  c.LightTextColor,
		BorderColor:     c.BorderColor,
		MainFont:        c.MainFont,
		FontSize:        c.FontSize,
	}
}

type visualOutput struct {
	Body visualBody
}

type siteInput struct {
	Body siteBody
}

type siteBody struct {
	SiteName              string `json:"site_name" required:"false" example:"Mi Pequeño Tesoro"`
	AllowNewRegistrations *bool  `json:"allow_new_registrations" required:"false"`
}

type siteOutput struct {
	Body siteResponse
}

type siteResponse struct {
	SiteName              string `json:"site_name"`
	AllowNewRegistrations bool   `json:"allow_new_registrations"`
}

func toSiteResponse(c settings.SiteConfig) siteResponse {
	return siteResponse{SiteName: c.SiteName, AllowNewRegistrations: c.AllowNewRegistrations}
}
