package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"TradeMind/internal/di"
	"TradeMind/internal/usecase"

	"github.com/spf13/cobra"
)

var (
	renderPage    string
	renderSeed    int64
	renderOut     string
	renderBackend string
	renderAll     bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render pages to static HTML",
	Long: `Render runs the page initializers offline and writes the finished HTML.
With --all every page is written into the --out directory as <page>.html;
otherwise the single page goes to --out, or stdout when --out is empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if renderBackend != "" {
			cfg.Charts.Backend = renderBackend
		}
		r, err := di.InitializePageRenderer(cfg)
		if err != nil {
			return fmt.Errorf("renderer initialization failed: %w", err)
		}

		if !renderAll {
			return renderOne(cmd, r, renderPage, renderOut)
		}
		if renderOut == "" {
			return fmt.Errorf("--all needs --out")
		}
		if err := os.MkdirAll(renderOut, 0o755); err != nil {
			return err
		}
		for _, p := range usecase.Pages {
			if err := renderOne(cmd, r, p, filepath.Join(renderOut, p+".html")); err != nil {
				return err
			}
		}
		return nil
	},
}

func renderOne(cmd *cobra.Command, r *usecase.PageRenderer, page, out string) error {
	res, err := r.Render(cmd.Context(), page, renderSeed)
	if err != nil {
		return err
	}

	if out == "" {
		if _, err := cmd.OutOrStdout().Write(res.HTML); err != nil {
			return fmt.Errorf("write %s: %w", page, err)
		}
		return nil
	}
	if err := writeFile(out, res.HTML); err != nil {
		return fmt.Errorf("write %s: %w", page, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s -> %s (seed %d, features %v)\n", page, out, res.Seed, res.Report.Active())
	return nil
}

// writeFile creates path and writes b, reporting a failed close as well as
// a failed write.
func writeFile(path string, b []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = f.Write(b)
	return err
}

func init() {
	renderCmd.Flags().StringVar(&renderPage, "page", "index", "page to render (index, risk, psychology, technical)")
	renderCmd.Flags().Int64Var(&renderSeed, "seed", 0, "random walk seed (0 = config or clock)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file, or directory with --all")
	renderCmd.Flags().StringVar(&renderBackend, "backend", "", "chart backend override (chartjs, raster)")
	renderCmd.Flags().BoolVar(&renderAll, "all", false, "render every page")
	rootCmd.AddCommand(renderCmd)
}
