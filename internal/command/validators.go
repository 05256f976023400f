// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tfsweep/internal/filters"
	"github.com/tfctl/tfsweep/internal/output"
	"github.com/tfctl/tfsweep/internal/provider"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// SweepFlagsValidator checks flag combinations that no single flag validator
// can see.
func SweepFlagsValidator(ctx context.Context, c *cli.Command) (context.Context, error) {
	if c.IsSet("download") && c.String("download") == "" {
		return ctx, fmt.Errorf("--download needs a directory")
	}
	if (c.String("access-key") == "") != (c.String("secret-key") == "") {
		return ctx, fmt.Errorf("--access-key and --secret-key must be given together")
	}
	if c.Int("cache-hours") < 0 {
		return ctx, fmt.Errorf("--cache-hours must not be negative")
	}
	return ctx, nil
}

func OutputValidator(value any) error {
	return oneOf(value, output.Formats)
}

func ProviderValidator(value any) error {
	s, _ := value.(string)
	scheme, _, err := provider.Parse("x", s)
	if err != nil {
		return err
	}
	return oneOf(scheme, provider.Schemes())
}

func FilterValidator(value any) error {
	s, _ := value.(string)
	_, err := filters.Parse(s)
	return err
}

func oneOf(value any, valid []string) error {
	for _, v := range valid {
		if v == value {
			return nil
		}
	}
	return fmt.Errorf("must be one of %v", valid)
}
