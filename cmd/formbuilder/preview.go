package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	formbuilder "github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/pkg/formfile"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

func newPreviewCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "preview <form-file>",
		Short: "Render a form file as shopper-facing HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := formfile.Load(args[0], nil)
			if err != nil {
				return err
			}
			out, err := formbuilder.RenderPreview(cmd.Context(), form)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "schema <form-file>",
		Short: "Print the OpenAPI document describing a form's submissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := formfile.Load(args[0], nil)
			if err != nil {
				return err
			}
			doc := validation.New().Document(form)
			out, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, append(out, '\n'))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
