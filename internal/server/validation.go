package server

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"ice-breaker/internal/model"
)

const (
	joinCodeLength = 6
	maxNameLength  = 20
)

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("joincode", func(fl validator.FieldLevel) bool {
			_, err := validateJoinCode(fl.Field().String())
			return err == nil
		})
		_ = engine.RegisterValidation("displayname", func(fl validator.FieldLevel) bool {
			_, err := validateDisplayName(fl.Field().String())
			return err == nil
		})
		_ = engine.RegisterValidation("reaction", func(fl validator.FieldLevel) bool {
			return model.ValidReactionType(fl.Field().String())
		})
	})
}

// validateJoinCode checks the six-character human-entry code shape. The
// backend remains the authority on whether the code exists.
func validateJoinCode(code string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if len(trimmed) != joinCodeLength {
		return "", fmt.Errorf("join codes are %d characters", joinCodeLength)
	}
	for _, r := range trimmed {
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		return "", errors.New("join codes use letters and digits only")
	}
	return trimmed, nil
}

func validateDisplayName(name string) (string, error) {
	trimmed := normalizeText(name)
	if trimmed == "" {
		return "", errors.New("display name is required")
	}
	if len(trimmed) > maxNameLength {
		return "", fmt.Errorf("display name must be %d characters or fewer", maxNameLength)
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}
