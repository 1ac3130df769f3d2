package model

import (
	"errors"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MinTitleLength    = 3
	MaxTitleLength    = 100
	MaxTitleStoreSize = 255
)

// forbiddenTitleWords - so khớp substring, không phân biệt hoa thường
var forbiddenTitleWords = []string{"spam", "test", "delete", "admin"}

var ErrTitleContent = validation.NewError(
	"validation_book_title",
	"title contains forbidden words or has invalid length (3-100)",
)

// TitleRule là content policy của title; nil/rỗng bỏ qua để Required/NilOrNotEmpty xử lý
var TitleRule = validation.By(checkTitle)

func checkTitle(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil || validation.IsEmpty(v) {
		return nil
	}

	title, ok := v.(string)
	if !ok {
		return errors.New("must be a string")
	}

	if !IsTitleAllowed(title) {
		return ErrTitleContent
	}
	return nil
}

// IsTitleAllowed: trim còn >= 3 ký tự, tổng <= 100 ký tự, không chứa từ cấm
func IsTitleAllowed(title string) bool {
	if utf8.RuneCountInString(strings.TrimSpace(title)) < MinTitleLength {
		return false
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return false
	}

	lower := strings.ToLower(title)
	for _, word := range forbiddenTitleWords {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}
