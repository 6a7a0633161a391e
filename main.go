package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/minic/ast"
	"github.com/pontaoski/minic/config"
	"github.com/pontaoski/minic/typeinfo"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

func newPrinter(c *cli.Context) *printer {
	return &printer{out: os.Stderr, color: !c.Bool("no-color")}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("minic: ")

	app := &cli.App{
		Name:  "minic",
		Usage: "check minic sources",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log progress",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "print diagnostics without colors",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print a stack trace with failures",
			},
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "module manifest to use instead of ./minic.{yaml,yml,toml}",
			},
		},
		Before: func(c *cli.Context) error {
			verbose = c.Bool("verbose")
			traceErrors = c.Bool("trace")
			return nil
		},
		ExitErrHandler: func(context *cli.Context, err error) {
			if err == nil {
				return
			}
			if traceErrors {
				tracerr.PrintSourceColor(err)
				os.Exit(1)
			}
			if coder, ok := err.(cli.ExitCoder); ok {
				if msg := coder.Error(); msg != "" {
					log.Print(msg)
				}
				os.Exit(coder.ExitCode())
			}
			log.Fatalf("%v", tracerr.Unwrap(err))
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "create a module manifest",
				ArgsUsage: "<package>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "toml",
						Usage: "write minic.toml instead of minic.yaml",
					},
				},
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return cli.Exit("no package name provided", 1)
					}
					path := config.DefaultName
					if c.Bool("toml") {
						path = "minic.toml"
					}
					if err := config.New(name).Save(path); err != nil {
						return err
					}
					verbosef("wrote %s", path)
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "print the tokens of a file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					toks, err := lexFile(c.Args().First())
					if err != nil {
						return err
					}
					for _, tok := range toks {
						fmt.Printf("%s\t%s\n", tok.Location.From, tok)
					}
					return nil
				},
			},
			{
				Name:      "parse",
				Usage:     "print the syntax tree of a file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "repr",
						Usage: "dump the Go representation of the tree",
					},
				},
				Action: func(c *cli.Context) error {
					src, err := parseFile(c.Args().First())
					if err != nil {
						return err
					}
					if c.Bool("repr") {
						repr.Println(src.unit)
						return nil
					}
					return ast.Fprint(os.Stdout, src.unit)
				},
			},
			{
				Name:      "check",
				Usage:     "type check a module",
				ArgsUsage: "[files...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "scopes",
						Usage: "print the global scope after checking",
					},
				},
				Action: func(c *cli.Context) error {
					mod, err := loadModule(c)
					if err != nil {
						return err
					}
					p := newPrinter(c)
					res, errs, err := checkModule(mod, p)
					if err != nil {
						return err
					}
					if c.Bool("scopes") {
						fmt.Print(res.Global)
					}
					if errs > 0 {
						p.summary(errs, len(mod.files))
						return cli.Exit("", 1)
					}
					return nil
				},
			},
			{
				Name:      "typeinfo",
				Usage:     "emit an LLVM module carrying the type information of a module",
				ArgsUsage: "[files...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "write to this file instead of stdout",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "emit the type information as JSON",
					},
				},
				Action: func(c *cli.Context) error {
					mod, err := loadModule(c)
					if err != nil {
						return err
					}
					p := newPrinter(c)
					res, errs, err := checkModule(mod, p)
					if err != nil {
						return err
					}
					if errs > 0 {
						p.summary(errs, len(mod.files))
						return cli.Exit("", 1)
					}

					info := typeinfo.Build(res, mod.reg)
					info.Package = mod.packageName()

					var out []byte
					if c.Bool("json") {
						if out, err = typeinfo.Marshal(info); err != nil {
							return err
						}
						out = append(out, '\n')
					} else {
						m, err := typeinfo.Module(info, res, mod.reg)
						if err != nil {
							return err
						}
						out = []byte(m.String())
					}

					if path := c.String("output"); path != "" {
						verbosef("writing %s", path)
						return tracerr.Wrap(os.WriteFile(path, out, 0644))
					}
					_, err = os.Stdout.Write(out)
					return err
				},
			},
			{
				Name:      "readinfo",
				Usage:     "dump the type information of a compiled module",
				ArgsUsage: "<library>",
				Action: func(c *cli.Context) error {
					info, err := typeinfo.ReadFile(c.Args().First())
					if err != nil {
						return err
					}
					repr.Println(info)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%v", tracerr.Unwrap(err))
	}
}
