package lifecycle

import (
	"math/rand/v2"
	"strconv"
	"time"
)

const (
	idLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idDigits  = "0123456789"
)

// NewAnimalID genera el formato AB-1234. La unicidad la garantiza la PK del store.
func NewAnimalID() string {
	b := make([]byte, 0, 7)
	for i := 0; i < 2; i++ {
		b = append(b, idLetters[rand.IntN(len(idLetters))])
	}
	b = append(b, '-')
	for i := 0; i < 4; i++ {
		b = append(b, idDigits[rand.IntN(len(idDigits))])
	}
	return string(b)
}

// NewRecordID es el id de cruzas/incubaciones: milisegundos unix en decimal.
func NewRecordID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}
