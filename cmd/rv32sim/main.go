package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/rv32sim/rv32sim/cpu"
	"github.com/rv32sim/rv32sim/emulator"
	"github.com/rv32sim/rv32sim/mem"
)

type fileConfig struct {
	Origin      *uint32 `toml:"origin"`
	Mem         *uint32 `toml:"mem"`
	ConsoleBase *uint32 `toml:"console_base"`
}

func main() {
	var asmFile string
	var origin uint
	var memSize uint
	var consoleBase uint = mem.ConsoleBase
	var batch int
	var trace bool
	var verbose bool
	var configFile string

	flag.StringVar(&asmFile, "asm", "", "assembly source file to load")
	flag.UintVar(&origin, "origin", 0x1000, "load address for the assembled image")
	flag.UintVar(&memSize, "mem", mem.DefaultSize, "memory size in bytes")
	flag.IntVar(&batch, "batch", 64, "Step calls per cancellation check")
	flag.BoolVar(&trace, "trace", false, "print a state dump after every batch")
	flag.BoolVar(&verbose, "v", false, "verbose mode: log every assembled line and executed step")
	flag.StringVar(&configFile, "config", "", "TOML file overriding -origin/-mem and the console device base address")

	flag.Parse()

	if asmFile == "" {
		log.Fatalf("%v: -asm is required", os.Args[0])
	}

	if configFile != "" {
		var cfg fileConfig
		if _, err := toml.DecodeFile(configFile, &cfg); err != nil {
			log.Fatalf("%v: %v", configFile, err)
		}
		if cfg.Origin != nil {
			origin = uint(*cfg.Origin)
		}
		if cfg.Mem != nil {
			memSize = uint(*cfg.Mem)
		}
		if cfg.ConsoleBase != nil {
			consoleBase = uint(*cfg.ConsoleBase)
		}
	}

	src, err := os.ReadFile(asmFile)
	if err != nil {
		log.Fatalf("%v: %v", asmFile, err)
	}

	e := emulator.NewEmulatorAt(uint32(memSize), uint32(consoleBase))
	e.Console.Output = os.Stdout
	e.Verbose = verbose

	if err := e.Load(string(src), uint32(origin)); err != nil {
		var asmErr *emulator.ErrAssemble
		if errors.As(err, &asmErr) {
			for _, diag := range asmErr.Errors {
				fmt.Fprintln(os.Stderr, diag)
			}
		}
		log.Fatalf("%v: %v", asmFile, err)
	}

	ctx := context.Background()
	for {
		res, err := e.Run(ctx, batch)
		if err != nil {
			log.Fatal(err)
		}
		if trace {
			printDump(e.Dump())
		}
		if res.Outcome != cpu.Retired {
			if res.Outcome == cpu.Trap {
				fmt.Printf("trap: cause=%d epc=%#x\n", res.Cause, res.Epc)
				os.Exit(1)
			}
			return
		}
	}
}

func printDump(d cpu.StateDump) {
	fmt.Printf("pc=%#08x priv=%d cycle=%d instret=%d mcause=%d mepc=%#x\n",
		d.PC, d.Priv, d.Cycle, d.Instret, d.Mcause, d.Mepc)
}
