package event

type Input struct {
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string   `json:"time" validate:"required,clock"`
	Kind        string   `json:"kind" validate:"required,max=50"`
	Description string   `json:"description" validate:"max=1000"`
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit" validate:"max=30"`
	Notes       string   `json:"notes" validate:"max=2000"`
	Favorite    bool     `json:"favorite"`
}
