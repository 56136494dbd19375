package psqlbuilder

import (
	"github.com/Masterminds/squirrel"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ForDriver возвращает squirrel-билдер с плейсхолдерами нужного диалекта:
// $1, $2 ... для postgres и ? для sqlite
func ForDriver(driver string) squirrel.StatementBuilderType {
	if driver == DriverPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}
