// Package sqlstore - репозитории доменных пакетов поверх storage.Gateway.
// Все запросы строятся squirrel, плейсхолдеры зависят от диалекта.
package sqlstore

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// likePattern экранирует спецсимволы LIKE и оборачивает в %...%
func likePattern(s string) string {
	r := make([]rune, 0, len(s)+2)
	r = append(r, '%')
	for _, c := range s {
		if c == '%' || c == '_' || c == '\\' {
			r = append(r, '\\')
		}
		r = append(r, c)
	}
	return string(append(r, '%'))
}

// like - регистрозависимость определяется базой
func like(column, s string) sq.Sqlizer {
	return sq.Expr(column+` LIKE ? ESCAPE '\'`, likePattern(s))
}

// nullStringDest - sql.Scanner, пишущий NULL как nil
type nullStringDest struct{ dst **string }

func (d nullStringDest) Scan(src any) error {
	var v sql.NullString
	if err := v.Scan(src); err != nil {
		return err
	}
	*d.dst = nullString(v)
	return nil
}
