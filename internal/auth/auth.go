package auth

import (
	"crypto/subtle"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// AdminAuthorizer проверяет админский ключ из заголовка запроса
// Предпочитается bcrypt-хеш из конфигурации; переменная окружения с
// ключом в открытом виде поддерживается для локальной разработки
type AdminAuthorizer struct {
	keyHash  string
	plainKey string
	log      Logger
}

// NewAdminAuthorizer создает новый AdminAuthorizer
// keyHash - bcrypt-хеш ключа, plainEnv - имя переменной окружения с ключом
func NewAdminAuthorizer(keyHash, plainEnv string, log Logger) *AdminAuthorizer {
	plainKey := ""
	if plainEnv != "" {
		plainKey = os.Getenv(plainEnv)
	}
	if keyHash == "" && plainKey == "" {
		log.Warn("auth: no admin key configured, admin endpoints are locked")
	}
	return &AdminAuthorizer{
		keyHash:  keyHash,
		plainKey: plainKey,
		log:      log,
	}
}

// Authorize проверяет предъявленный ключ
// Без настроенного ключа доступ всегда запрещён
func (a *AdminAuthorizer) Authorize(key string) bool {
	if key == "" {
		return false
	}

	if a.keyHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.keyHash), []byte(key)) == nil
	}

	if a.plainKey != "" {
		return subtle.ConstantTimeCompare([]byte(a.plainKey), []byte(key)) == 1
	}

	return false
}
