package validation

import "fmt"

const (
	MinPasswordLength = 6
	// bcrypt отбрасывает всё после 72 байт.
	MaxPasswordBytes = 72
)

// ValidatePassword проверяет длину пароля администратора.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return fmt.Errorf("пароль должен быть не менее %d символов", MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("пароль не может быть длиннее %d байт", MaxPasswordBytes)
	}
	return nil
}
