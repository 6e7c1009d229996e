package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive (got %v)", c.Auth.SessionTTL)
	}

	if c.Auth.PasswordHashCost < 10 || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be in [10, %d] (got %d)",
			bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if c.Quiz.OptionCount < 2 {
		return fmt.Errorf("quiz.option_count must be at least 2 (got %d)", c.Quiz.OptionCount)
	}

	if c.Translator.BaseURL == "" {
		return fmt.Errorf("translator.base_url must not be empty")
	}
	if c.Translator.TargetLang == "" {
		return fmt.Errorf("translator.target_lang must not be empty")
	}

	return nil
}
