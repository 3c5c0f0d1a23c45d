package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/artbrowse/internal/browse"
	"github.com/jask/artbrowse/internal/config"
)

func newPageCmd(e *env) *cobra.Command {
	var (
		page   int
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Print one page of artworks",
		Args:  cobra.NoArgs,
		RunE: e.run(func(cmd *cobra.Command, _ []string) error {
			if limit < 1 {
				limit = e.cfg.UI.PageSize
			}
			client, err := e.client()
			if err != nil {
				return err
			}
			res, err := client.FetchPage(cmd.Context(), page, limit)
			if err != nil {
				return fmt.Errorf("fetch page %d: %w", page, err)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}
			writeln(out, renderArtworks(res.Data))
			pages := (res.Pagination.Total + limit - 1) / limit
			writeln(out, dimStyle.Render(fmt.Sprintf("page %d/%d, %d records", page, pages, res.Pagination.Total)))
			return nil
		}),
	}
	cmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "rows per page (default ui.page_size)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw page as JSON")
	return cmd
}

func newSelectCmd(e *env) *cobra.Command {
	var (
		limit  int
		asJSON bool
		save   string
	)
	cmd := &cobra.Command{
		Use:   "select N",
		Short: "Collect the first N artworks in server order",
		Args:  cobra.ExactArgs(1),
		RunE: e.run(func(cmd *cobra.Command, args []string) error {
			n, ok := browse.ParseTarget(args[0])
			if !ok {
				return fmt.Errorf("invalid count %q: want a positive integer", args[0])
			}
			if limit < 1 {
				limit = e.cfg.UI.PageSize
			}
			client, err := e.client()
			if err != nil {
				return err
			}

			res, err := browse.Accumulate(cmd.Context(), client, n, limit)
			if err != nil {
				e.logger.Error().Err(err).Int("target", n).Int("limit", limit).Msg("Select first N failed")
				return err
			}
			e.logger.Info().Int("target", n).Int("selected", len(res.Items)).Int("pages", res.Pages).Msg("Select first N finished")

			if save != "" || cmd.Flags().Changed("save") {
				snapshots, _, err := e.openStore()
				if err != nil {
					return err
				}
				snap, err := snapshots.Save(cmd.Context(), save, limit, res.Items)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "saved snapshot %s (%s)\n", snap.ID, snap.Name)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res.Items)
			}
			writeln(out, renderArtworks(res.Items))
			writeln(out, dimStyle.Render(fmt.Sprintf("selected %d of first %d, %d pages fetched", len(res.Items), n, res.Pages)))
			return nil
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "page size used while fetching (default ui.page_size)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the selection as JSON")
	cmd.Flags().StringVar(&save, "save", "", "store the selection as a named snapshot")
	return cmd
}

func newSnapshotsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Manage saved selections",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved selections, newest first",
		Args:  cobra.NoArgs,
		RunE: e.run(func(cmd *cobra.Command, _ []string) error {
			snapshots, _, err := e.openStore()
			if err != nil {
				return err
			}
			items, err := snapshots.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				writeln(cmd.OutOrStdout(), dimStyle.Render("no snapshots"))
				return nil
			}
			writeln(cmd.OutOrStdout(), renderSnapshots(items))
			return nil
		}),
	}

	var showJSON bool
	show := &cobra.Command{
		Use:   "show ID",
		Short: "Print the artworks of a saved selection",
		Args:  cobra.ExactArgs(1),
		RunE: e.run(func(cmd *cobra.Command, args []string) error {
			snapshots, _, err := e.openStore()
			if err != nil {
				return err
			}
			detail, err := snapshots.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if showJSON {
				return writeJSON(out, detail.Artworks)
			}
			s := detail.Snapshot
			writeln(out, titleStyle.Render(s.Name)+dimStyle.Render(fmt.Sprintf("  %s, %d artworks, saved %s", s.ID, s.Count, s.CreatedAt.Local().Format("2006-01-02 15:04"))))
			writeln(out, renderArtworks(detail.Artworks))
			return nil
		}),
	}
	show.Flags().BoolVar(&showJSON, "json", false, "print the artworks as JSON")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved selection",
		Args:  cobra.ExactArgs(1),
		RunE: e.run(func(cmd *cobra.Command, args []string) error {
			snapshots, _, err := e.openStore()
			if err != nil {
				return err
			}
			if err := snapshots.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			writeln(cmd.OutOrStdout(), "deleted "+args[0])
			return nil
		}),
	}

	var yes bool
	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete every saved selection",
		Args:  cobra.NoArgs,
		RunE: e.run(func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("purge deletes every snapshot; pass --yes to confirm")
			}
			_, maintenance, err := e.openStore()
			if err != nil {
				return err
			}
			n, err := maintenance.Purge(cmd.Context())
			if err != nil {
				return err
			}
			writeln(cmd.OutOrStdout(), fmt.Sprintf("deleted %d snapshots", n))
			return nil
		}),
	}
	purge.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	cmd.AddCommand(list, show, del, purge)
	return cmd
}

func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: e.run(func(cmd *cobra.Command, _ []string) error {
			path := config.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; pass --force to overwrite", path)
			}
			if err := config.Save(e.cfg); err != nil {
				return err
			}
			writeln(cmd.OutOrStdout(), "wrote "+path)
			return nil
		}),
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
