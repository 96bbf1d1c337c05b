// Package operators knows the onboard APIs that are supported and how to build a vehicle for them.
package operators

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/onboard/pkg/ctdf"
)

const (
	APITypeICEPortal = "iceportal"
)

// Definition describes an onboard API as configured in data/operators
type Definition struct {
	Identifier    string             `yaml:"identifier" validate:"required"`
	Name          string             `yaml:"name" validate:"required"`
	Operator      string             `yaml:"operator" validate:"required"`
	TransportType ctdf.TransportType `yaml:"transporttype" validate:"required"`

	APIType string `yaml:"apitype" validate:"required,oneof=iceportal"`
	APIURL  string `yaml:"apiurl" validate:"omitempty,url"`

	// ISO-8601 durations, eg. PT1S
	RefreshPeriod  string `yaml:"refreshperiod" validate:"omitempty"`
	ConnectionsTTL string `yaml:"connectionsttl" validate:"omitempty"`
}

func (d *Definition) Validate() error {
	if err := validator.New().Struct(d); err != nil {
		return fmt.Errorf("operator %s: %w", d.Identifier, err)
	}

	if !d.TransportType.Valid() {
		return fmt.Errorf("operator %s: unknown transport type %s", d.Identifier, d.TransportType)
	}

	if _, err := d.GetRefreshPeriod(); err != nil {
		return err
	}
	if _, err := d.GetConnectionsTTL(); err != nil {
		return err
	}

	return nil
}

// GetRefreshPeriod returns the configured polling period, zero if none is set
func (d *Definition) GetRefreshPeriod() (time.Duration, error) {
	return parseDuration(d.RefreshPeriod)
}

// GetConnectionsTTL returns the configured connection cache lifetime, zero if none is set
func (d *Definition) GetConnectionsTTL() (time.Duration, error) {
	return parseDuration(d.ConnectionsTTL)
}

func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}

	duration, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %s: %w", value, err)
	}

	reference := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	period := duration.Shift(reference).Sub(reference)

	if period <= 0 {
		return 0, fmt.Errorf("invalid duration %s: must be positive", value)
	}

	return period, nil
}
