// Command dmgemu runs the DMG core emulator against a cartridge ROM,
// either interactively in a terminal or headlessly for a fixed number
// of frames.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"dmgemu/internal/backend/headless"
	"dmgemu/internal/backend/terminal"
	"dmgemu/internal/machine"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmgemu"
	app.Usage = "dmgemu [options] <ROM file>"
	app.Description = "A cycle-accurate DMG-class emulator core"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "boot-rom",
			Usage: "Path to an optional 256-byte boot ROM image",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a terminal display",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
		},
		cli.BoolFlag{
			Name:  "test-log",
			Usage: "Force LY reads to 0x90, the override acceptance test ROMs rely on",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("dmgemu exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided")
	}
	romPath := c.Args().Get(0)

	m, err := machine.NewFromFile(romPath, c.String("boot-rom"), machine.Options{
		SerialOut:   func(b byte) { fmt.Fprintf(os.Stdout, "%c", b) },
		TestLogMode: c.Bool("test-log"),
	})
	if err != nil {
		return err
	}

	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames with a positive value")
		}
		headless.Run(m, frames)
		return nil
	}

	backend, err := terminal.New()
	if err != nil {
		return err
	}
	defer backend.Close()

	backend.Run(m)
	return nil
}
