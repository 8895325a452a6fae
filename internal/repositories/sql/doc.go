// Package sql предоставляет реализацию репозитория коротких ссылок поверх gorm.
//
// Все методы репозитория преобразуют ошибки драйвера в общие ошибки уровня
// репозитория:
//   - gorm.ErrDuplicatedKey -> repositories.ErrDuplicateKey
//   - gorm.ErrRecordNotFound -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
package sql
