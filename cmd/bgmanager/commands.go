package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/darkawower/bgmanager/internal/config"
	"github.com/darkawower/bgmanager/internal/core"
	"github.com/darkawower/bgmanager/internal/imageinfo"
	"github.com/darkawower/bgmanager/internal/settings"
	"github.com/darkawower/bgmanager/internal/ui"
)

const timeLayout = "2006-01-02 15:04:05"

// saveCmd creates the save command.
func (a *app) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Save current wallpaper settings for all monitors",
		Long: `Captures the background colour, wallpaper position and the wallpaper of
every monitor and writes them to the settings file, replacing any
previous backup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *core.Manager) error {
				result, err := m.Save()
				if err != nil {
					return err
				}

				snap := result.Snapshot
				a.out.Success("Settings saved to: %s", shortenPath(result.Path))
				a.out.ColorSwatch("Background Color", snap.BackgroundColor.Hex())
				a.out.Field("Position", snap.Position.String())
				a.out.Field("Monitors", strconv.Itoa(len(snap.Monitors)))
				a.printMonitors(snap.Monitors)
				return nil
			})
		},
	}
}

// whiteCmd creates the white command.
func (a *app) whiteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "white",
		Short: "Set a solid white background on all monitors",
		Long: `Sets the background to the fallback colour (white unless configured
otherwise) and removes the wallpaper image from every monitor.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *core.Manager) error {
				result, err := m.SetSolidFallback()
				if err != nil {
					return err
				}

				for _, f := range result.Failures {
					a.out.Warning("Could not clear wallpaper on Monitor %d: %v", f.Index, f.Err)
				}
				a.out.Success("Background set to solid color %s", result.Color)
				a.out.Field("Monitors", fmt.Sprintf("%d of %d cleared", len(result.Cleared), result.Total()))
				return nil
			})
		},
	}
}

// restoreCmd creates the restore command.
func (a *app) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore saved wallpaper settings",
		Long: `Applies the settings file written by 'save'. Monitors that are no longer
connected, or whose image is gone, are reported and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(func(m *core.Manager) error {
				result, err := m.Restore()
				if core.IsNotFound(err) {
					a.out.ErrorWithHint(
						fmt.Sprintf("No saved settings found at: %s", shortenPath(m.StorePath())),
						"Run with 'save' first to backup your settings.",
					)
					return nil
				}
				if err != nil {
					return err
				}

				for _, r := range result.Restored {
					a.out.Bullet("Restored Monitor %d: %s", r.Index, wallpaperName(r.WallpaperPath))
				}
				for _, f := range result.Failures {
					a.out.Warning("Could not restore Monitor %d: %v", f.Index, f.Err)
				}

				snap := result.Snapshot
				a.out.Success("Settings restored for %d monitor(s)!", result.RestoredCount())
				a.out.ColorSwatch("Background Color", snap.BackgroundColor.Hex())
				a.out.Field("Position", snap.Position.String())
				a.out.Field("Saved at", snap.SavedAt.Local().Format(timeLayout))
				return nil
			})
		},
	}
}

// statusCmd creates the status command.
func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"show"},
		Short:   "Show current settings and the saved backup",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showStatus()
		},
	}
}

func (a *app) showStatus() error {
	return a.withManager(func(m *core.Manager) error {
		result, err := m.Status()
		if err != nil {
			return err
		}

		cur := result.Current
		a.out.Section("Current Settings")
		a.out.ColorSwatch("Background Color", cur.BackgroundColor.Hex())
		a.out.Field("Position", cur.Position.String())
		a.out.Field("Monitors", strconv.Itoa(len(cur.Monitors)))

		if len(cur.Monitors) > 0 {
			a.out.Print("")
			a.out.Table(monitorTable(cur.Monitors, result.Degraded))
		}
		if len(result.Degraded) > 0 {
			a.out.Info("* size unknown, placeholder shown")
		}

		a.out.Print("")
		a.out.Section("Backup")
		a.out.Field("File", shortenPath(result.BackupPath))

		switch {
		case result.BackupErr != nil:
			a.out.Warning("Backup cannot be read: %v", result.BackupErr)
		case !result.BackupExists:
			a.out.FieldColored("State", "none", ui.Gray)
			a.out.Info("Run 'bgmanager save' to back up the current settings")
		case result.Backup == nil:
			a.out.FieldColored("State", "empty", ui.Yellow)
			a.out.Info("Run 'bgmanager save' to back up the current settings")
		default:
			a.out.Field("Saved at", result.Backup.SavedAt.Local().Format(timeLayout))
			a.out.Field("Monitors", strconv.Itoa(len(result.Backup.Monitors)))
			if result.InSync() {
				a.out.FieldColored("State", "matches current settings", ui.Green)
			} else {
				a.out.FieldColored("State", "differs from current settings", ui.Yellow)
			}
		}

		return nil
	})
}

// initCmd creates the init command.
func (a *app) initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := a.cfgFile
			if configPath == "" {
				configPath = filepath.Join(config.DefaultConfigDir(), "config.toml")
			}

			if _, err := os.Stat(configPath); err == nil && !force {
				a.out.Warning("Configuration already exists at %s", shortenPath(configPath))
				a.out.Info("Use --force to overwrite")
				return nil
			}

			cfg := config.DefaultConfig()
			if a.file != "" {
				cfg.Backup.Path = a.file
			}
			if err := cfg.Save(configPath); err != nil {
				return err
			}

			a.out.Success("bgmanager initialized")
			a.out.Field("Config", shortenPath(configPath))
			a.out.Field("Backup", shortenPath(cfg.Backup.Path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration")

	return cmd
}

// versionCmd creates the version command.
func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.out.Print("bgmanager version %s", version)
		},
	}
}

// printMonitors lists saved monitor records under a field block.
func (a *app) printMonitors(records []settings.MonitorRecord) {
	for _, rec := range records {
		a.out.Bullet("%s: %dx%d at (%d,%d)", monitorLabel(rec), rec.Width, rec.Height, rec.Left, rec.Top)
		a.out.Print("      Wallpaper: %s", wallpaperLabel(rec.WallpaperPath))
	}
}

// monitorTable builds the status table. Degraded rows get a "*" after the
// size.
func monitorTable(records []settings.MonitorRecord, degraded []int) ([]string, [][]string) {
	headers := []string{"#", "Primary", "Size", "Origin", "Wallpaper", "Image"}

	estimated := make(map[int]bool, len(degraded))
	for _, i := range degraded {
		estimated[i] = true
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		primary := ""
		if rec.IsPrimary {
			primary = "yes"
		}
		size := fmt.Sprintf("%dx%d", rec.Width, rec.Height)
		if estimated[rec.Index] {
			size += "*"
		}
		image := "-"
		if rec.HasWallpaper() {
			image = imageinfo.Describe(rec.WallpaperPath)
		}
		rows = append(rows, []string{
			strconv.Itoa(rec.Index),
			primary,
			size,
			fmt.Sprintf("(%d,%d)", rec.Left, rec.Top),
			wallpaperLabel(shortenPath(rec.WallpaperPath)),
			image,
		})
	}
	return headers, rows
}

func monitorLabel(rec settings.MonitorRecord) string {
	if rec.IsPrimary {
		return fmt.Sprintf("Monitor %d (Primary)", rec.Index)
	}
	return fmt.Sprintf("Monitor %d", rec.Index)
}

func wallpaperLabel(path string) string {
	if path == "" {
		return "(none)"
	}
	return path
}

// wallpaperName is the short form used in restore output.
func wallpaperName(path string) string {
	if path == "" {
		return "(solid color)"
	}
	return baseName(path)
}
