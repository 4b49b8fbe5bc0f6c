package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load (.gb, .gz, .zip or .7z)")
	frames := flag.Int("frames", 60, "The number of frames to run")
	debug := flag.Bool("debug", false, "Log every instruction executed")
	breakpoint := flag.String("break", "", "Stop when the PC reaches this address (e.g. 0x0150)")
	serialOut := flag.Bool("serial", false, "Print bytes sent over the serial port to stdout")
	flag.Parse()

	logger := log.New()
	if *debug {
		logger = log.NewDebug(os.Stderr)
	}

	if err := run(logger, *romFile, *frames, *debug, *breakpoint, *serialOut); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(logger log.Logger, romFile string, frames int, debug bool, breakpoint string, serialOut bool) error {
	if romFile == "" {
		return errors.New("no rom file provided, use -rom")
	}

	// open the rom file
	rom, err := utils.LoadFile(romFile)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger)}
	if debug {
		opts = append(opts, gameboy.Debug())
	}
	if serialOut {
		opts = append(opts, gameboy.WithSerialOutput(os.Stdout))
	}
	if breakpoint != "" {
		pc, err := strconv.ParseUint(breakpoint, 0, 16)
		if err != nil {
			return fmt.Errorf("parsing breakpoint %q: %w", breakpoint, err)
		}
		opts = append(opts, gameboy.WithBreakpoint(uint16(pc)))
	}

	// create a new gameboy
	gb := gameboy.NewGameBoy(rom, opts...)
	fmt.Println(gb.MMU.Cart.Title())

	for i := 0; i < frames; i++ {
		if err := gb.Frame(); err != nil {
			if errors.Is(err, cpu.ErrBreakpoint) {
				logger.Infof("%v after %d frames", err, gb.Frames())
				break
			}
			fmt.Println(gb.CPU)
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}

	if serialOut {
		fmt.Println()
	}
	fmt.Println(gb.CPU)
	fmt.Printf("frames=%d cycles=%d video=%016x\n", gb.Frames(), gb.CPU.Cycles, gb.Snapshot().Hash())
	return nil
}
