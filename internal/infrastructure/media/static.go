package media

import (
	"net/http"
	"regexp"

	"github.com/spf13/afero"
)

// скрытые сегменты пути (например корзина) не отдаются
var visiblePath = regexp.MustCompile(`^(/?[^./][^/]*)+/?$`)

// Handler раздает файлы каталога root только на чтение, без листинга каталогов
func Handler(fsys afero.Fs, root string) http.Handler {
	ro := afero.NewRegexpFs(afero.NewReadOnlyFs(afero.NewBasePathFs(fsys, root)), visiblePath)
	return http.FileServer(noListing{afero.NewHttpFs(ro)})
}

type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, afero.ErrFileNotFound
	}
	return f, nil
}
