// This file is part of Gophertape.
//
// Gophertape is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophertape is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophertape.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/digest"
	"github.com/jetsetilly/gophertape/environment"
	"github.com/jetsetilly/gophertape/formats"
	"github.com/jetsetilly/gophertape/logger"
	"github.com/jetsetilly/gophertape/modalflag"
	"github.com/jetsetilly/gophertape/paths"
	"github.com/jetsetilly/gophertape/performance"
	"github.com/jetsetilly/gophertape/player"
	"github.com/jetsetilly/gophertape/preferences"
	"github.com/jetsetilly/gophertape/regression"
	"github.com/jetsetilly/gophertape/resampler"
	"github.com/jetsetilly/gophertape/statsview"
	"github.com/jetsetilly/gophertape/tapeloader"
	"github.com/jetsetilly/gophertape/version"
	"github.com/jetsetilly/gophertape/wavwriter"
)

// exit values returned by launch()
const (
	exitOK         = 0
	exitParseError = 10
	exitModeError  = 20
)

// name of the regression database in the resource directory
const regressionDBFile = "regressionDB"

func main() {
	// #ctrlc cancels the context. PLAY mode stops playback gracefully, the
	// other modes are too short to care
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exitVal := launch(ctx, os.Args[1:], os.Stdout)

	stop()
	os.Exit(exitVal)
}

// launch parses the arguments and runs the selected mode. it returns the value
// to be used with os.Exit()
func launch(ctx context.Context, args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("CONVERT", "INFO", "PLAY", "REGRESS", "PERFORMANCE", "FORMATS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	switch md.Mode() {
	case "CONVERT":
		err = convert(md, output)

	case "INFO":
		err = info(md, output)

	case "PLAY":
		err = play(ctx, md, output)

	case "REGRESS":
		err = regress(md, output, os.Stdin)

	case "PERFORMANCE":
		err = perform(md, output)

	case "FORMATS":
		err = listFormats(md, output)

	case "VERSION":
		fmt.Fprintln(output, version.String())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitModeError
	}

	return exitOK
}

// the flags shared by the CONVERT, INFO and PLAY modes
type commonFlags struct {
	format    *string
	prefs     *string
	log       *bool
	quiet     *bool
	statsview *bool
}

func addCommonFlags(md *modalflag.Modes) commonFlags {
	cf := commonFlags{
		format: md.AddString("format", "AUTO", "force use of tape format"),
		prefs:  md.AddString("prefs", "", "preferences file to use"),
		log:    md.AddBool("log", false, "echo log to stdout"),
		quiet:  md.AddBool("quiet", false, "suppress logging"),
	}
	if statsview.Available() {
		cf.statsview = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	return cf
}

// prepare the environment and load the tape named in the single remaining
// argument of the mode
func (cf commonFlags) open(md *modalflag.Modes, output io.Writer) (*cassette.Cassette, cassette.Format, *environment.Environment, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, nil, nil, fmt.Errorf("tape image required for %s mode", md)
	case 1:
	default:
		return nil, nil, nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	if cf.statsview != nil && *cf.statsview {
		statsview.Launch(output)
	}

	prf, err := preferences.NewPreferences(*cf.prefs)
	if err != nil {
		return nil, nil, nil, err
	}

	// command line flags take precedence over the preferences file
	if *cf.quiet {
		prf.Quiet.Set(true)
	}
	if *cf.log {
		prf.Echo.Set(true)
	}

	env, err := environment.NewEnvironment(environment.MainEnvironment, prf)
	if err != nil {
		return nil, nil, nil, err
	}

	if prf.Echo.Get().(bool) {
		logger.SetEcho(output, false)
	} else {
		logger.SetEcho(nil, false)
	}

	ld := tapeloader.NewLoader(md.GetArg(0), *cf.format)
	cas, f, err := ld.Open(env)
	if err != nil {
		return nil, nil, nil, err
	}

	return cas, f, env, nil
}

// resample the cassette if the output rate preference requires it
func outputRate(env *environment.Environment, cas *cassette.Cassette) (*cassette.Cassette, error) {
	rate := env.Prefs.Rate(cas.Options().SampleRate)
	if rate == cas.Options().SampleRate {
		return cas, nil
	}
	cas.Logf("main", "resampling from %dHz to %dHz", cas.Options().SampleRate, rate)
	return resampler.Resample(cas, rate)
}

func convert(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	cf := addCommonFlags(md)
	rate := md.AddInt("rate", -1, "output sample rate (zero for the native rate of the format)")
	out := md.AddString("out", "", "name of WAV file to write")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cas, f, env, err := cf.open(md, output)
	if err != nil {
		return err
	}

	if *rate >= 0 {
		err = env.Prefs.OutputRate.Set(*rate)
		if err != nil {
			return err
		}
	}

	cas, err = outputRate(env, cas)
	if err != nil {
		return err
	}

	filename := *out
	if filename == "" {
		filename = fmt.Sprintf("%s.wav", paths.UniqueFilename(f.Name(), md.GetArg(0)))
	}

	err = wavwriter.Write(filename, cas)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%s written (%s, %d samples at %dHz)\n", filename, f.Name(), cas.Len(), cas.Options().SampleRate)

	return nil
}

func info(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	cf := addCommonFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cas, f, _, err := cf.open(md, output)
	if err != nil {
		return err
	}

	opts := cas.Options()
	fmt.Fprintf(output, "format:      %s (%s)\n", f.Name(), f.Description())
	fmt.Fprintf(output, "channels:    %d\n", opts.Channels)
	fmt.Fprintf(output, "sample rate: %dHz\n", opts.SampleRate)
	fmt.Fprintf(output, "samples:     %d\n", cas.Len())
	fmt.Fprintf(output, "duration:    %.2fs\n", cas.Duration())
	fmt.Fprintf(output, "digest:      %s\n", digest.Cassette(cas))

	if !*cf.log {
		fmt.Fprintln(output)
		logger.Write(output)
	}

	return nil
}

func play(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	cf := addCommonFlags(md)
	volume := md.AddInt("volume", -1, "playback volume (0 to 100)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cas, _, env, err := cf.open(md, output)
	if err != nil {
		return err
	}

	if *volume >= 0 {
		err = env.Prefs.Volume.Set(*volume)
		if err != nil {
			return err
		}
	}

	cas, err = outputRate(env, cas)
	if err != nil {
		return err
	}

	pl, err := player.NewPlayer(cas.Options().SampleRate)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "playing %s (%.2fs)\n", md.GetArg(0), cas.Duration())

	return pl.Play(ctx, cas, env.Prefs.Volume.Get().(int))
}

func perform(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	format := md.AddString("format", "AUTO", "force use of tape format")
	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddString("profile", "NONE", "run performance check with profiling: comma separated CPU, MEM, TRACE or ALL")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("tape image required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	// logging is suppressed so that it doesn't affect the measurement
	env, err := environment.NewEnvironment(environment.Label("performance"), nil)
	if err != nil {
		return err
	}
	env.Prefs.Quiet.Set(true)

	ld := tapeloader.NewLoader(md.GetArg(0), *format)

	return performance.Check(output, prf, ld, env, *duration)
}

func listFormats(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	for _, f := range formats.Registry {
		fmt.Fprintf(output, "%-12s %-40s %s\n", f.Name(), f.Description(), strings.Join(f.Extensions(), " "))
	}

	return nil
}

// yesReader always returns 'y' when it is read.
type yesReader struct{}

func (*yesReader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	p[0] = 'y'
	return 1, nil
}

func regress(md *modalflag.Modes, output io.Writer, confirmation io.Reader) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")
	db := md.AddString("db", "", "regression database to use")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	dbPth := *db
	if dbPth == "" {
		dbPth, err = paths.ResourcePath("", regressionDBFile)
		if err != nil {
			return err
		}
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()
		verbose := md.AddBool("verbose", false, "output more detail (eg. error messages)")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		ok, err := regression.RegressRun(output, dbPth, *verbose, md.RemainingArgs())
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("regression tests failed")
		}

	case "LIST":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if len(md.RemainingArgs()) > 0 {
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}

		return regression.RegressList(output, dbPth)

	case "DELETE":
		md.NewMode()
		answerYes := md.AddBool("yes", false, "answer yes to confirmation")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("database key required for %s mode", md)
		case 1:
			if *answerYes {
				confirmation = &yesReader{}
			}
			return regression.RegressDelete(output, confirmation, dbPth, md.GetArg(0))
		default:
			return fmt.Errorf("only one entry can be deleted at at time")
		}

	case "ADD":
		return regressAdd(md, output, dbPth)
	}

	return nil
}

func regressAdd(md *modalflag.Modes, output io.Writer, dbPth string) error {
	md.NewMode()

	mode := md.AddString("mode", "SAMPLES", "type of regression entry: SAMPLES, LOG")
	format := md.AddString("format", "AUTO", "force use of tape format")
	rate := md.AddInt("rate", 0, "output sample rate (zero for the native rate of the format)")
	notes := md.AddString("notes", "", "additional annotation for the database")

	md.AdditionalHelp(
		`The SAMPLES mode records a digest of the converted waveform. The LOG mode records
a digest of the log entries made during the conversion.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("tape image required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("regression entries can only be added one at a time")
	}

	m, err := regression.ParseDigestMode(*mode)
	if err != nil {
		return err
	}

	reg := &regression.DigestRegression{
		Filename: md.GetArg(0),
		Format:   *format,
		Rate:     *rate,
		Mode:     m,
		Notes:    *notes,
	}

	return regression.RegressAdd(output, dbPth, reg)
}
