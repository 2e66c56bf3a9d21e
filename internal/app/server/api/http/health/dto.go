package health

const (
	statusOK       = "ok"
	statusDegraded = "degraded"

	componentUp   = "up"
	componentDown = "down"
)

type Input struct{}

// Output - код ответа зависит от состояния компонентов: 200 или 503
type Output struct {
	Status int
	Body   Report
}

// Report - состояние дневника и его зависимостей
type Report struct {
	Status  string `json:"status" enum:"ok,degraded" doc:"ok, если все компоненты доступны"`
	Storage string `json:"storage" enum:"up,down" doc:"База журналов, событий и воспоминаний"`
	Media   string `json:"media" enum:"up,down" doc:"Каталог фотографий и миниатюр"`
}
