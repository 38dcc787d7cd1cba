package main

import (
	"fmt"
	"log"
	"os"

	. "github.com/ZenLiuCN/memdl"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := cli.NewApp()
	app.Usage = "shared library memory loader"
	app.Name = "memload"
	app.Description = "load shared libraries from memory buffers and resolve their exported symbols"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log every loading attempt"},
		&cli.StringFlag{Name: "tmp", Aliases: []string{"t"}, Usage: "scratch directory for staging files", EnvVars: []string{EnvTempDir}},
	}
	app.Commands = []*cli.Command{
		{
			Name:   "platform",
			Action: platform,
			Usage:  "display platform and loading strategies",
		},
		{
			Name:   "inspect",
			Action: inspect,
			Usage:  "display format, architecture and digest of library files",
			Args:   true,
		},
		{
			Name:   "validate",
			Action: validate,
			Usage:  "check library files are loadable images, fails on the first invalid one",
			Args:   true,
		},
		{
			Name:   "load",
			Action: load,
			Usage:  "load a library file from memory, resolve symbols, then unload it",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{Name: "sym", Aliases: []string{"s"}, Usage: "symbols to resolve"},
				&cli.StringSliceFlag{Name: "call", Aliases: []string{"c"}, Usage: "zero argument functions to call, the integer result is printed"},
				&cli.BoolFlag{Name: "lazy", Usage: "resolve symbols lazily instead of at load time"},
				&cli.BoolFlag{Name: "global", Usage: "expose symbols to libraries loaded later"},
				&cli.BoolFlag{Name: "file", Aliases: []string{"f"}, Usage: "load from the path instead of from memory"},
			},
			Args: true,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("failure %s", err)
	}
}

func loader(ctx *cli.Context) *Loader {
	d := ctx.Bool("debug")
	opts := []Option{WithDebug(d)}
	if d {
		if l, err := zap.NewDevelopment(); err == nil {
			opts = append(opts, WithLogger(l))
		}
	}
	if t := ctx.String("tmp"); t != "" {
		opts = append(opts, WithTempDir(t))
	}
	return New(opts...)
}

func platform(ctx *cli.Context) error {
	l := loader(ctx)
	fmt.Printf("platform:\t%s (%d)\n", CurrentPlatform(), CurrentPlatform())
	fmt.Printf("strategies:\t%v\n", l.Strategies())
	return nil
}

func inspect(ctx *cli.Context) (err error) {
	for _, s := range ctx.Args().Slice() {
		var img Image
		if img, err = ReadImage(s); err != nil {
			return
		}
		log.Printf("%s\n%s", s, Inspect(img))
	}
	return
}

func validate(ctx *cli.Context) (err error) {
	if ctx.NArg() == 0 {
		return fmt.Errorf("missing library files")
	}
	for _, s := range ctx.Args().Slice() {
		var img Image
		if img, err = ReadImage(s); err != nil {
			return
		}
		if err = img.Validate(); err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
		log.Printf("%s: %s %s", s, img.Format(), img.Arch())
	}
	return
}

func load(ctx *cli.Context) (err error) {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expect exactly one library file")
	}
	path := ctx.Args().First()
	flags := Now | Local
	if ctx.Bool("lazy") {
		flags = Lazy | flags&^Now
	}
	if ctx.Bool("global") {
		flags = Global | flags&^Local
	}
	l := loader(ctx)
	var lib *Library
	if ctx.Bool("file") {
		lib, err = l.OpenFile(path, flags)
	} else {
		var img Image
		if img, err = ReadImage(path); err != nil {
			return
		}
		log.Printf("library size: %d bytes, %s %s", len(img), img.Format(), img.Arch())
		lib, err = l.Open(img, flags)
	}
	if err != nil {
		return
	}
	defer func() {
		if cerr := lib.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	log.Printf("loaded by %s as %s with %s", lib.Strategy(), lib.Path(), lib.Flags())
	for _, name := range ctx.StringSlice("sym") {
		s, serr := lib.Lookup(name)
		if serr != nil {
			log.Printf("%s: %s", name, serr)
			continue
		}
		log.Printf("%s: %#x", name, uintptr(s))
	}
	for _, name := range ctx.StringSlice("call") {
		var s Sym
		if s, err = lib.Lookup(name); err != nil {
			return
		}
		log.Printf("%s() = %d", name, int(s.Call()))
	}
	return
}
