package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	service "github.com/okian/goalguessr/internal/app"
	"github.com/okian/goalguessr/internal/domain/types"
)

// errInvalidDocument marks a goal document that failed validation.
var errInvalidDocument = errors.New("invalid goal document")

func (c *cli) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <goal.json>",
		Short: "Check a goal document without storing it",
		Long: `Validate reads a JSON document holding "metadata" and "animation",
prints the validation report and exits non-zero when the goal is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			var doc types.GoalDocument
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			opts, err := c.serviceOptions()
			if err != nil {
				return err
			}
			v := service.New(opts...).ValidateGoal(doc.Animation, doc.Metadata)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(v); err != nil {
				return err
			}
			if !v.Valid {
				return fmt.Errorf("%w: %s", errInvalidDocument, args[0])
			}
			return nil
		},
	}
}
