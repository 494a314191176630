package main

import (
	"fmt"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/repository/yamlcontent"
	"portfolio-site/pkg/validation"

	"github.com/spf13/cobra"
)

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect portfolio content files",
	}
	cmd.AddCommand(newContentCheckCmd())
	return cmd
}

func newContentCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a content file (the embedded default when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			validate := validation.New()

			var (
				p      *domain.Portfolio
				err    error
				source = "embedded default"
			)
			if len(args) == 1 {
				source = args[0]
				p, err = yamlcontent.LoadFile(args[0], validate)
			} else {
				p, err = yamlcontent.Default(validate)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}

			skills := 0
			for _, c := range p.Skills.Categories {
				skills += len(c.Skills)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%q, %d skills, %d projects, %d experience entries)\n",
				source, p.Hero.Name, skills, len(p.Projects), len(p.Experience))
			return nil
		},
	}
}
