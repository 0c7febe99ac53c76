package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/chronos/internal/importer"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a term syllabus from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := importer.LoadSyllabusSchema(args[0])
			if err != nil {
				return err
			}
			report, err := app.Syllabus.ImportSyllabus(context.Background(), schema)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d subjects, %d chapters, %d lab reports\n",
				report.Subjects, report.Chapters, report.LabReports)
			if len(report.Skipped) > 0 {
				fmt.Printf("Skipped existing: %s\n", strings.Join(report.Skipped, ", "))
			}
			return nil
		},
	}
}
