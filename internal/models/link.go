package models

import "time"

// CodeLength длина короткого кода по умолчанию.
// CodeLengthExtended длина кода после исчерпания попыток подбора (коллизии).
const (
	CodeLength         = 6
	CodeLengthExtended = 8
)

// Link структура модели хранения короткой ссылки.
// После создания мутирует только счетчик Clicks.
type Link struct {
	ID        uint      `json:"-" gorm:"primarykey"`
	Code      string    `json:"code" gorm:"size:8;uniqueIndex;not null"`
	URL       string    `json:"url" gorm:"size:2048;not null"`
	CreatedAt time.Time `json:"createdAt"`
	Clicks    uint64    `json:"clicks"`

	// Метаданные создателя. Пишутся один раз при создании, нужны только для
	// разбора жалоб, наружу не отдаются.
	CreatorIP string `json:"creatorIP,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}
