//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/e-gun/TweetTopicModeler/internal/db"
	"github.com/e-gun/TweetTopicModeler/internal/lnch"
	"github.com/e-gun/TweetTopicModeler/internal/str"
	"github.com/e-gun/TweetTopicModeler/internal/twt"
	"github.com/e-gun/TweetTopicModeler/internal/vec"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/e-gun/TweetTopicModeler/web"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// these next variables should be injected at build time: 'go build -ldflags "-X main.GitCommit=$GIT_COMMIT"', etc

var GitCommit string
var VersSuppl string
var BuildDate string

func main() {
	lnch.GitCommit = GitCommit
	lnch.VersSuppl = VersSuppl
	lnch.BuildDate = BuildDate

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := newRootCommand(lnch.BuildDefaultConfig())
	err := cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		lnch.Msg.CRIT(err.Error())
	}
	lnch.Msg.ExitOrHang(vv.ExitCode(err))
}

// newRootCommand - cobra parses the flags; the configuration is only settled inside RunE
func newRootCommand(cfg *str.CurrentConfiguration) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ttm",
		Short:         lnch.Msg.ColStyle(vv.SHORTHELP),
		Long:          lnch.Msg.ColStyle(vv.LONGHELP),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool(lnch.FLAGVERSION); v {
				lnch.PrintVersion(*cfg)
				lnch.PrintBuildInfo()
				lnch.PrintLicense()
				return nil
			}

			if err := configure(cmd, cfg); err != nil {
				return err
			}

			if w, _ := cmd.Flags().GetBool(lnch.FLAGWRITECF); w {
				return writeconfig(cmd, cfg)
			}

			lnch.PrintVersion(*cfg)

			switch cfg.Profile {
			case "cpu":
				defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.DataDir)).Stop()
			case "mem":
				defer profile.Start(profile.MemProfile, profile.ProfilePath(cfg.DataDir)).Stop()
			}

			return runpipeline(cmd.Context(), cfg, defaultstages(cfg, stopdir(cmd)))
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", vv.ErrUsage, err)
	})

	lnch.RegisterFlags(cmd, cfg)
	return cmd
}

// configure - defaults, then the config file, then whatever flags were actually given
func configure(cmd *cobra.Command, cfg *str.CurrentConfiguration) error {
	path, _ := cmd.Flags().GetString(lnch.FLAGCONFIG)

	found, err := lnch.ReadConfigFile(path, cfg)
	if err != nil {
		return err
	}

	if err = lnch.ApplyFlags(cmd, cfg); err != nil {
		return err
	}

	lnch.UpdateMessageMakerWithConfig(cfg, lnch.Msg, twt.Msg, db.Msg, vec.Msg, web.Msg)
	if found {
		lnch.Msg.FYI(fmt.Sprintf("read the configuration file '%s'", path))
	}
	return nil
}

// writeconfig - save the settled configuration where --config points; the next launch starts from it
func writeconfig(cmd *cobra.Command, cfg *str.CurrentConfiguration) error {
	path, _ := cmd.Flags().GetString(lnch.FLAGCONFIG)
	if err := lnch.WriteConfigFile(path, cfg); err != nil {
		return err
	}
	lnch.Msg.NOTE(fmt.Sprintf("wrote the configuration file '%s'", path))
	return nil
}

// stopdir - the stop lists live next to the configuration file
func stopdir(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString(lnch.FLAGCONFIG)
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); err != nil {
		return ""
	}
	return dir
}
