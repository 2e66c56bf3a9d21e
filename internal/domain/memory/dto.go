package memory

type Input struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description" validate:"max=1000"`
	Favorite    bool   `json:"favorite"`
}
