//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/e-gun/TweetTopicModeler/internal/str"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/spf13/cobra"
)

var (
	Msg = NewMessageMakerWithDefaults()
)

// flag names
const (
	FLAGARCHIVE  = "archive"
	FLAGBROWSER  = "browser"
	FLAGBW       = "bw"
	FLAGCONFIG   = "config"
	FLAGDATADIR  = "datadir"
	FLAGECHOLOG  = "echolog"
	FLAGEXTENDED = "extended"
	FLAGHOST     = "host"
	FLAGHTMLDIR  = "htmldir"
	FLAGITER     = "iterations"
	FLAGLOAD     = "load"
	FLAGLOGLEVEL = "loglevel"
	FLAGMAXFEAT  = "maxfeatures"
	FLAGMDS      = "mds"
	FLAGMINDF    = "mindf"
	FLAGPORT     = "port"
	FLAGPROCS    = "processes"
	FLAGPROFILE  = "profile"
	FLAGSEED     = "seed"
	FLAGSERVE    = "serve"
	FLAGTOPICS   = "topics"
	FLAGTOPWORDS = "topwords"
	FLAGTWEETS   = "tweets"
	FLAGUSER     = "user"
	FLAGVERSION  = "version"
	FLAGWORDCLD  = "wordcloud"
	FLAGWRITECF  = "writeconfig"
)

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.Archive = ""
	c.BlackAndWhite = vv.BLACKANDWHITE
	c.Browser = true
	c.DataDir = vv.DEFAULTDATADIR
	c.EchoLog = vv.DEFAULTECHOLOG
	c.ExtendedText = false
	c.HostIP = vv.SERVEDFROMHOST
	c.HostPort = vv.SERVEDFROMPORT
	c.HTMLDir = vv.DEFAULTDATADIR
	c.LdaIter = vv.LDAITER
	c.LdaMDS = vv.LDAVISMDS
	c.LdaProcs = runtime.NumCPU()
	c.LdaSeed = vv.LDASEED
	c.LdaTopics = vv.LDATOPICS
	c.LdaTopWords = vv.LDATOPWORDS
	c.Load = false
	c.LogLevel = vv.DEFAULTGOLOGLVL
	c.Profile = ""
	c.Serve = true
	c.Tweets = vv.DEFAULTTWEETS
	c.User = vv.DEFAULTHANDLE
	c.VecMaxFeat = vv.VECMAXFEATURES
	c.VecMinDF = vv.VECMINDF
	c.WordCloud = true
	return &c
}

// ConfigFilePath - "~/.config/ttm-conf.json"
func ConfigFilePath() string {
	uh, e := os.UserHomeDir()
	if e != nil {
		// how likely is this...?
		return vv.CONFIGBASIC
	}
	return fmt.Sprintf(vv.CONFIGALTAPTH, uh) + vv.CONFIGBASIC
}

// ReadConfigFile - overlay the values in a JSON config file onto cfg; a missing file is not an error
func ReadConfigFile(path string, cfg *str.CurrentConfiguration) (bool, error) {
	const (
		FAIL1 = "could not parse '%s': %w"
		FAIL2 = "could not open '%s': %w"
	)

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf(FAIL2+" (%w)", path, err, vv.ErrConfig)
	}
	defer f.Close()

	// decoding into the existing struct leaves any field that the file omits at its current value
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err = dec.Decode(cfg); err != nil {
		return false, fmt.Errorf(FAIL1+" (%w)", path, err, vv.ErrConfig)
	}
	return true, nil
}

// WriteConfigFile - dump cfg as JSON; the output is a valid input for ReadConfigFile
func WriteConfigFile(path string, cfg *str.CurrentConfiguration) error {
	js, err := json.MarshalIndent(cfg, "", vv.JSONINDENT)
	if err != nil {
		return fmt.Errorf("%w: %w", vv.ErrConfig, err)
	}
	if err = os.WriteFile(path, js, vv.WRITEPERMS); err != nil {
		return fmt.Errorf("%w: %w", vv.ErrConfig, err)
	}
	return nil
}

// RegisterFlags - attach every launch flag to the command; the defaults shown in the help come from cfg
func RegisterFlags(cmd *cobra.Command, cfg *str.CurrentConfiguration) {
	yn := func(b bool) string {
		if b {
			return "Y"
		}
		return "N"
	}

	fs := cmd.Flags()
	fs.String(FLAGLOAD, yn(cfg.Load), "fetch a fresh timeline before analyzing (Y/N)")
	fs.Int(FLAGTWEETS, cfg.Tweets, "number of posts to request")
	fs.String(FLAGUSER, cfg.User, "the account to fetch and/or analyze")
	fs.String(FLAGWORDCLD, yn(cfg.WordCloud), "draw a word cloud (Y/N)")

	fs.Int(FLAGTOPICS, cfg.LdaTopics, "number of LDA topics")
	fs.Int(FLAGTOPWORDS, cfg.LdaTopWords, "number of terms to print per topic")
	fs.Int(FLAGMINDF, cfg.VecMinDF, "documents a term must appear in to enter the vocabulary")
	fs.Int(FLAGMAXFEAT, cfg.VecMaxFeat, "maximum vocabulary size")
	fs.Int(FLAGSEED, cfg.LdaSeed, "random seed for the LDA")
	fs.Int(FLAGITER, cfg.LdaIter, "LDA passes over the corpus")
	fs.Int(FLAGPROCS, cfg.LdaProcs, "LDA goroutines; only 1 makes a seeded run exactly repeatable")
	fs.String(FLAGMDS, cfg.LdaMDS, "inter-topic distance layout: tsne or pcoa")

	fs.String(FLAGARCHIVE, cfg.Archive, "also store fetched posts: a postgres:// DSN or a sqlite file path")
	fs.String(FLAGDATADIR, cfg.DataDir, "directory holding the tweet CSV files")
	fs.String(FLAGSERVE, yn(cfg.Serve), "serve the visualizations; N writes HTML files instead (Y/N)")
	fs.String(FLAGBROWSER, yn(cfg.Browser), "open a browser on the served pages (Y/N)")
	fs.String(FLAGHTMLDIR, cfg.HTMLDir, "where to write the HTML files when not serving")
	fs.String(FLAGHOST, cfg.HostIP, "address to serve from")
	fs.Int(FLAGPORT, cfg.HostPort, "port to serve from")
	fs.String(FLAGEXTENDED, yn(cfg.ExtendedText), "ask for untruncated post text (Y/N)")

	fs.Int(FLAGLOGLEVEL, cfg.LogLevel, fmt.Sprintf("terminal message level (%d-%d)", 0, 5))
	fs.Int(FLAGECHOLOG, cfg.EchoLog, "web server request logging (0-3)")
	fs.Bool(FLAGBW, cfg.BlackAndWhite, "no color in terminal output")
	fs.String(FLAGPROFILE, cfg.Profile, "write a cpu or mem profile")
	fs.String(FLAGCONFIG, ConfigFilePath(), "configuration file")
	fs.Bool(FLAGWRITECF, false, "write the effective configuration to the --config file and exit")
	fs.Bool(FLAGVERSION, false, "print version information and exit")
}

// ApplyFlags - copy every flag the user actually set onto cfg and then validate the result
func ApplyFlags(cmd *cobra.Command, cfg *str.CurrentConfiguration) error {
	fs := cmd.Flags()

	var errs []error

	setyn := func(name string, target *bool) {
		if !fs.Changed(name) {
			return
		}
		s, _ := fs.GetString(name)
		b, err := ParseYN(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("--%s: %w", name, err))
			return
		}
		*target = b
	}

	setint := func(name string, target *int) {
		if fs.Changed(name) {
			*target, _ = fs.GetInt(name)
		}
	}

	setstr := func(name string, target *string) {
		if fs.Changed(name) {
			*target, _ = fs.GetString(name)
		}
	}

	setyn(FLAGLOAD, &cfg.Load)
	setyn(FLAGWORDCLD, &cfg.WordCloud)
	setyn(FLAGSERVE, &cfg.Serve)
	setyn(FLAGBROWSER, &cfg.Browser)
	setyn(FLAGEXTENDED, &cfg.ExtendedText)

	setint(FLAGTWEETS, &cfg.Tweets)
	setint(FLAGTOPICS, &cfg.LdaTopics)
	setint(FLAGTOPWORDS, &cfg.LdaTopWords)
	setint(FLAGMINDF, &cfg.VecMinDF)
	setint(FLAGMAXFEAT, &cfg.VecMaxFeat)
	setint(FLAGSEED, &cfg.LdaSeed)
	setint(FLAGITER, &cfg.LdaIter)
	setint(FLAGPROCS, &cfg.LdaProcs)
	setint(FLAGPORT, &cfg.HostPort)
	setint(FLAGLOGLEVEL, &cfg.LogLevel)
	setint(FLAGECHOLOG, &cfg.EchoLog)

	setstr(FLAGUSER, &cfg.User)
	setstr(FLAGMDS, &cfg.LdaMDS)
	setstr(FLAGARCHIVE, &cfg.Archive)
	setstr(FLAGDATADIR, &cfg.DataDir)
	setstr(FLAGHTMLDIR, &cfg.HTMLDir)
	setstr(FLAGHOST, &cfg.HostIP)
	setstr(FLAGPROFILE, &cfg.Profile)

	if fs.Changed(FLAGBW) {
		cfg.BlackAndWhite, _ = fs.GetBool(FLAGBW)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return ValidateConfig(cfg)
}

// ValidateConfig - refuse values that the pipeline cannot run with
func ValidateConfig(cfg *str.CurrentConfiguration) error {
	const (
		FAIL = "%w: %s"
	)
	var errs []error

	bad := func(format string, a ...any) {
		errs = append(errs, fmt.Errorf(FAIL, vv.ErrUsage, fmt.Sprintf(format, a...)))
	}

	if cfg.Tweets < 1 {
		bad("tweets must be positive: %d", cfg.Tweets)
	}
	if strings.TrimSpace(cfg.User) == "" {
		bad("user must not be empty")
	}
	if cfg.LdaTopics < 1 || cfg.LdaTopics > vv.LDAMAXTOPICS {
		bad("topics must be between 1 and %d: %d", vv.LDAMAXTOPICS, cfg.LdaTopics)
	}
	if cfg.LdaTopWords < 1 {
		bad("topwords must be positive: %d", cfg.LdaTopWords)
	}
	if cfg.VecMinDF < 1 {
		bad("mindf must be positive: %d", cfg.VecMinDF)
	}
	if cfg.VecMaxFeat < 1 {
		bad("maxfeatures must be positive: %d", cfg.VecMaxFeat)
	}
	if cfg.LdaIter < 1 {
		bad("iterations must be positive: %d", cfg.LdaIter)
	}
	if cfg.LdaProcs < 1 {
		bad("processes must be positive: %d", cfg.LdaProcs)
	}
	if cfg.HostPort < 1 || cfg.HostPort > 65535 {
		bad("port out of range: %d", cfg.HostPort)
	}
	if cfg.LogLevel < 0 || cfg.LogLevel > 5 {
		bad("loglevel must be between 0 and 5: %d", cfg.LogLevel)
	}
	if cfg.EchoLog < 0 || cfg.EchoLog > 3 {
		bad("echolog must be between 0 and 3: %d", cfg.EchoLog)
	}

	switch cfg.LdaMDS {
	case "tsne", "pcoa":
	default:
		bad("mds must be tsne or pcoa: %q", cfg.LdaMDS)
	}

	switch cfg.Profile {
	case "", "cpu", "mem":
	default:
		bad("profile must be cpu or mem: %q", cfg.Profile)
	}

	return errors.Join(errs...)
}

// ParseYN - "Y"/"N" plus the usual spellings of yes and no
func ParseYN(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "t", "true", "1":
		return true, nil
	case "n", "no", "f", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: expected Y or N, got %q", vv.ErrUsage, s)
	}
}
