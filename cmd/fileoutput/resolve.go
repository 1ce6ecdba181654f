package main

import (
	"fmt"

	fileoutput "github.com/shoraid/go-fileoutput"
	"github.com/shoraid/go-fileoutput/config"
	"github.com/spf13/cobra"
)

type resolveFlags struct {
	disk     string
	route    string
	language string
}

func (f *resolveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.disk, "disk", "", "disk alias (default disk when empty)")
	cmd.Flags().StringVar(&f.route, "route", fileoutput.DefaultDownloadRoute, "download route used for disks without temporary urls")
	cmd.Flags().StringVar(&f.language, "lang", "en", "language for built-in labels")
}

func (f *resolveFlags) resolve(cmd *cobra.Command, paths []string) (*fileoutput.Output, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	storage, err := config.NewManager(cfg)
	if err != nil {
		return nil, err
	}

	var value any = paths
	if len(paths) == 1 {
		value = paths[0]
	}

	field := fileoutput.Make("cli", storage).
		Disk(f.disk).
		Path(value).
		DownloadRoute(f.route).
		TemporaryURLExpiry(cfg.TemporaryURLExpiry)

	return field.Resolve(cmd.Context(), fileoutput.RenderContext{
		Language: fileoutput.MatchLanguage(f.language),
	})
}

func newURLCommand() *cobra.Command {
	var flags resolveFlags

	cmd := &cobra.Command{
		Use:   "url PATH...",
		Short: "Print the URL each path would be displayed with",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}

			for _, e := range out.Entries() {
				if e.URL == "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t(missing)\n", e.Path)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Path, e.URL)
			}
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func newRenderCommand() *cobra.Command {
	var flags resolveFlags

	cmd := &cobra.Command{
		Use:   "render PATH...",
		Short: "Print the field markup for the given paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}

			renderer, err := fileoutput.NewRenderer()
			if err != nil {
				return err
			}

			return renderer.Render(cmd.OutOrStdout(), out)
		},
	}
	flags.register(cmd)

	return cmd
}
