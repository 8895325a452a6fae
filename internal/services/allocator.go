package services

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

// codeAlphabet алфавит короткого кода: латиница в обоих регистрах и цифры.
const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeAllocator генерирует случайные кандидаты короткого кода.
// Никаких последовательных счетчиков: чисто случайный выбор с отбраковкой
// занятых кодов на стороне вызывающего. Резервированием кода считается сама
// запись в хранилище.
type CodeAllocator struct{}

func NewCodeAllocator() *CodeAllocator {
	return &CodeAllocator{}
}

// Generate возвращает случайный код заданной длины.
func (a *CodeAllocator) Generate(length int) (string, error) {
	code := make([]byte, length)
	alphabetLength := big.NewInt(int64(len(codeAlphabet)))

	for i := range code {
		num, err := rand.Int(rand.Reader, alphabetLength)
		if err != nil {
			return "", errors.Wrap(err, "generate short code")
		}
		code[i] = codeAlphabet[num.Int64()]
	}
	return string(code), nil
}
