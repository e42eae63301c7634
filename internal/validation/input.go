package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Константы валидации
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30

	MinRemixTitleLength       = 3
	MaxRemixTitleLength       = 200
	MinRemixDescriptionLength = 10
	MaxRemixDescriptionLength = 5000
	MinRemixRulesLength       = 20
	MaxRemixRulesLength       = 20000

	MinCommentLength = 1
	MaxCommentLength = 2000

	MinRemixGamesCount = 2
	MaxRemixGamesCount = 10

	MaxModeratorNotesLength = 2000
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

	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	if !strings.Contains(email, "@") {
		return fmt.Errorf("email должен содержать символ @")
	}

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

	if !strings.Contains(domainPart, ".") {
		return fmt.Errorf("доменная часть email должна содержать точку")
	}

	emailRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !emailRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateUsername проверяет имя пользователя.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("имя пользователя обязательно")
	}

	username = strings.TrimSpace(username)

	if err := ValidateLength("имя пользователя", username, MinUsernameLength, MaxUsernameLength); err != nil {
		return err
	}

	// Только буквы, цифры и подчеркивание
	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("имя пользователя может содержать только буквы, цифры и подчеркивание")
	}

	if len(username) > 0 && unicode.IsDigit(rune(username[0])) {
		return fmt.Errorf("имя пользователя не может начинаться с цифры")
	}

	return nil
}

// ValidateRemixTitle проверяет заголовок ремикса.
func ValidateRemixTitle(title string) error {
	if title == "" {
		return fmt.Errorf("заголовок ремикса обязателен")
	}

	title = strings.TrimSpace(title)

	return ValidateLength("заголовок ремикса", title, MinRemixTitleLength, MaxRemixTitleLength)
}

// ValidateRemixDescription проверяет описание ремикса.
func ValidateRemixDescription(description string) error {
	if description == "" {
		return fmt.Errorf("описание ремикса обязательно")
	}

	description = strings.TrimSpace(description)

	return ValidateLength("описание ремикса", description, MinRemixDescriptionLength, MaxRemixDescriptionLength)
}

// ValidateRemixRules проверяет текст правил ремикса.
func ValidateRemixRules(rules string) error {
	if rules == "" {
		return fmt.Errorf("правила ремикса обязательны")
	}

	rules = strings.TrimSpace(rules)

	return ValidateLength("правила ремикса", rules, MinRemixRulesLength, MaxRemixRulesLength)
}

// ValidateRemixGames проверяет список базовых игр ремикса.
func ValidateRemixGames(gameIDs []string) error {
	if len(gameIDs) < MinRemixGamesCount {
		return fmt.Errorf("ремикс должен объединять минимум %d игры", MinRemixGamesCount)
	}
	if len(gameIDs) > MaxRemixGamesCount {
		return fmt.Errorf("количество игр не может превышать %d", MaxRemixGamesCount)
	}

	seen := make(map[string]bool)
	for _, id := range gameIDs {
		if seen[id] {
			return fmt.Errorf("игра указана дважды")
		}
		seen[id] = true
	}

	return nil
}

// ValidateComment проверяет текст комментария.
func ValidateComment(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("комментарий не может быть пустым")
	}

	return ValidateLength("комментарий", strings.TrimSpace(content), MinCommentLength, MaxCommentLength)
}

// ValidateModeratorNotes проверяет заметки модератора.
func ValidateModeratorNotes(notes string) error {
	return ValidateLength("заметки модератора", notes, 0, MaxModeratorNotesLength)
}
