package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/hoops-edge/internal/nba"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("season", validateSeason)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateSeason accepts "2022-23" style seasons with consecutive years.
func validateSeason(fl validator.FieldLevel) bool {
	_, _, err := nba.SeasonYears(fl.Field().String())
	return err == nil
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	e := cfg.Engine

	if e.ProjectionLower >= e.ProjectionUpper {
		return fmt.Errorf("engine projection_lower must be below projection_upper")
	}
	if e.MeanLower >= e.MeanUpper {
		return fmt.Errorf("engine mean_lower must be below mean_upper")
	}
	if cfg.Seasons.Current == cfg.Seasons.Last {
		return fmt.Errorf("seasons current and last must differ")
	}
	if e.DecisionThreshold <= 0 || e.DecisionThreshold >= 1 {
		return fmt.Errorf("decision_threshold must be between 0 and 1 exclusive")
	}
	if e.LowTotal >= e.HighTotal {
		return fmt.Errorf("engine low_total must be below high_total")
	}

	half := nba.LeagueSize / 2
	for name, n := range map[string]int{
		"pace_n":        e.PaceN,
		"three_pt_n":    e.ThreePtN,
		"two_pt_n":      e.TwoPtN,
		"def_rebound_n": e.DefReboundN,
	} {
		if n > half {
			return fmt.Errorf("engine %s cannot exceed %d", name, half)
		}
	}

	if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
	}
	if cfg.Database.MinConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("min_connections cannot exceed max_connections")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var b strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.Namespace()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required", "required_if":
			fmt.Fprintf(&b, "- Field '%s' is required\n", field)
		case "url":
			fmt.Fprintf(&b, "- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			fmt.Fprintf(&b, "- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			fmt.Fprintf(&b, "- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			fmt.Fprintf(&b, "- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			fmt.Fprintf(&b, "- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "season":
			fmt.Fprintf(&b, "- Field '%s' must look like 2022-23, got '%v'\n", field, value)
		case "oneof":
			fmt.Fprintf(&b, "- Field '%s' has invalid value '%v'\n", field, value)
		default:
			fmt.Fprintf(&b, "- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", b.String())
}
