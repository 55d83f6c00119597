package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MaxNameLength        = 100
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
	MaxShortTextLength   = 200
	MaxURLLength         = 500
	MinSkillLevel        = 0
	MaxSkillLevel        = 100
	MaxTagLength         = 50
	MaxTagsCount         = 50
	MaxMessageLength     = 5000
	MaxSectionLength     = 100
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	if !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateRequired проверяет, что строка не пустая и не длиннее max.
func ValidateRequired(fieldName, value string, max int) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s обязательно", fieldName)
	}
	return ValidateLength(fieldName, value, 0, max)
}

// ValidateRange проверяет, что число лежит в [min, max].
func ValidateRange(fieldName string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s должен быть от %d до %d", fieldName, min, max)
	}
	return nil
}

// ValidateEnum проверяет принадлежность значения закрытому набору.
func ValidateEnum(fieldName, value string, allowed map[string]struct{}) error {
	if _, ok := allowed[value]; !ok {
		return fmt.Errorf("недопустимое значение %s: %q", fieldName, value)
	}
	return nil
}

// ValidateURL проверяет, что строка похожа на ссылку.
// Для http(s) обязателен хост, прочие схемы (mailto:, tel:) допускаются.
func ValidateURL(fieldName, link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return fmt.Errorf("%s обязательна", fieldName)
	}
	if err := ValidateLength(fieldName, link, 0, MaxURLLength); err != nil {
		return err
	}

	parsed, err := url.Parse(link)
	if err != nil || parsed.Scheme == "" {
		return fmt.Errorf("%s имеет некорректный формат URL", fieldName)
	}

	if (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host == "" {
		return fmt.Errorf("%s должна содержать доменное имя", fieldName)
	}

	return nil
}

// ValidateOptionalURL как ValidateURL, но пустая строка допустима.
func ValidateOptionalURL(fieldName, link string) error {
	if strings.TrimSpace(link) == "" {
		return nil
	}
	return ValidateURL(fieldName, link)
}

// ValidateAssetRef проверяет ссылку на картинку: абсолютный URL или путь от корня сайта.
func ValidateAssetRef(fieldName, ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return ValidateLength(fieldName, ref, 0, MaxURLLength)
	}
	return ValidateURL(fieldName, ref)
}

// ValidateTags проверяет список строковых меток (теги, технологии).
func ValidateTags(fieldName string, tags []string) error {
	if len(tags) > MaxTagsCount {
		return fmt.Errorf("%s: не более %d элементов", fieldName, MaxTagsCount)
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%s не может содержать пустых значений", fieldName)
		}
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return fmt.Errorf("%s: значение длиннее %d символов", fieldName, MaxTagLength)
		}
	}
	return nil
}
