package main

import (
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/akeil/resample"
)

const (
	checkmark = "✓"
	crossmark = "✗"
	ellipsis  = "…"
)

type settings struct {
	scaleX  float64
	scaleY  float64
	workers int
	quality int
}

func main() {
	err := run(os.Args[1:])
	if err != nil {
		fmt.Printf("%v Error: %v\n", crossmark, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func run(args []string) error {
	app := kingpin.New("resample", "Resize images with bilinear interpolation")
	app.HelpFlag.Short('h')

	logLevel := app.Flag("log-level", "Log level (debug, info, warning, error, none)").Envar("RESAMPLE_LOG_LEVEL").Default("warning").String()

	var rs, cs settings
	var scaleSet bool
	resize := app.Command("resize", "Resize an image").Default()
	var (
		input  = resize.Arg("input", "Source image").Required().String()
		output = resize.Flag("output", "Output file, the format is chosen by extension").Short('o').String()
		scale  = resize.Flag("scale", "Scale factor for both axes").Short('s').Action(markSet(&scaleSet)).Float64()
	)
	scaleFlags(resize, &rs)
	resize.Flag("workers", "Number of parallel workers, 0 for one per CPU").Short('w').Envar("RESAMPLE_WORKERS").Default("0").IntVar(&rs.workers)
	resize.Flag("quality", "JPEG quality (1-100)").Short('q').Envar("RESAMPLE_QUALITY").Default("90").IntVar(&rs.quality)

	compare := app.Command("compare", "Compare the result with the x/image bilinear scaler")
	compareInput := compare.Arg("input", "Source image").Required().String()
	scaleFlags(compare, &cs)

	command, err := app.Parse(args)
	if err != nil {
		return err
	}

	err = resample.SetLogLevel(*logLevel)
	if err != nil {
		return err
	}

	switch command {
	case resize.FullCommand():
		if scaleSet {
			rs.scaleX = *scale
			rs.scaleY = *scale
		}
		return doResize(rs, *input, *output)
	case compare.FullCommand():
		return doCompare(cs, *compareInput)
	}
	return fmt.Errorf("unknown command: %q", command)
}

// markSet records that a flag was given on the command line,
// so that an explicit zero is not mistaken for an absent flag.
func markSet(set *bool) kingpin.Action {
	return func(*kingpin.ParseContext) error {
		*set = true
		return nil
	}
}

func scaleFlags(cmd *kingpin.CmdClause, s *settings) {
	cmd.Flag("scale-x", "Horizontal scale factor").Short('x').Default("1.0").Float64Var(&s.scaleX)
	cmd.Flag("scale-y", "Vertical scale factor").Short('y').Default("1.0").Float64Var(&s.scaleY)
}
