// Package main provides nbtdump, a command-line utility to inspect, filter,
// and convert NBT files.
package main

import (
	"encoding/xml"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli"

	"github.com/scigolib/nbt"
)

func main() {
	app := cli.NewApp()
	app.Name = "nbtdump"
	app.Usage = "inspect and convert Named Binary Tag files"
	app.Commands = []cli.Command{
		dumpCommand,
		filterCommand,
		toxmlCommand,
		scanCommand,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("nbtdump: %v", err)
	}
}

var compressionFlag = cli.StringFlag{
	Name:  "gzip",
	Value: "auto",
	Usage: "compression mode: auto, yes, no",
}

func parseCompression(mode string) nbt.Compression {
	switch mode {
	case "yes":
		return nbt.Compressed
	case "no":
		return nbt.Uncompressed
	default:
		return nbt.AutoDetect
	}
}

func openReader(path, mode string) (*nbt.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r, err := nbt.Open(f, parseCompression(mode))
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return r, func() {
		if err := r.Close(); err != nil {
			log.Printf("closing reader: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Printf("closing file: %v", err)
		}
	}, nil
}

var dumpCommand = cli.Command{
	Name:      "dump",
	Usage:     "print the full tree of an NBT file",
	ArgsUsage: "<file.nbt>",
	Flags:     []cli.Flag{compressionFlag},
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 {
			return cli.NewExitError("usage: nbtdump dump [--gzip auto|yes|no] <file.nbt>", 1)
		}
		r, closeAll, err := openReader(c.Args().First(), c.String("gzip"))
		if err != nil {
			return err
		}
		defer closeAll()

		root, err := r.ReadTree(true)
		if err != nil {
			return err
		}
		printTree(root, 0)
		return nil
	},
}

var filterCommand = cli.Command{
	Name:      "filter",
	Usage:     "stream an NBT file, printing only nodes matching a filter",
	ArgsUsage: "<file.nbt>",
	Flags: []cli.Flag{
		compressionFlag,
		cli.StringFlag{Name: "path", Usage: "absolute path, slash-separated (e.g. /a/x)"},
		cli.StringFlag{Name: "name", Usage: "match any node with this name anywhere in the tree"},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 {
			return cli.NewExitError("usage: nbtdump filter [--path P | --name N] <file.nbt>", 1)
		}
		r, closeAll, err := openReader(c.Args().First(), c.String("gzip"))
		if err != nil {
			return err
		}
		defer closeAll()

		var filter nbt.NodeFilter
		switch {
		case c.String("path") != "":
			filter = nbt.AbsolutePathFilter(strings.Split(strings.TrimPrefix(c.String("path"), "/"), "/")...)
		case c.String("name") != "":
			filter = nbt.NameAnywhereFilter(c.String("name"))
		default:
			filter = nbt.NoneFilter()
		}

		fr, err := r.ReadFiltered(filter, true)
		if err != nil {
			return err
		}
		defer func() {
			if err := fr.Close(); err != nil {
				log.Printf("closing filtered reader: %v", err)
			}
		}()

		for {
			node, err := fr.Next()
			if err == nbt.ErrStreamDone {
				return nil
			}
			if err != nil {
				return err
			}
			printTree(node, 0)
		}
	},
}

var toxmlCommand = cli.Command{
	Name:      "toxml",
	Usage:     "convert an NBT file to its XML materialization",
	ArgsUsage: "<file.nbt>",
	Flags:     []cli.Flag{compressionFlag},
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 {
			return cli.NewExitError("usage: nbtdump toxml [--gzip auto|yes|no] <file.nbt>", 1)
		}
		r, closeAll, err := openReader(c.Args().First(), c.String("gzip"))
		if err != nil {
			return err
		}
		defer closeAll()

		el, _, err := r.ReadXML(true)
		if err != nil {
			return err
		}
		out, err := xml.MarshalIndent(el, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var scanCommand = cli.Command{
	Name:      "scan",
	Usage:     "walk every node of a file with a progress spinner, demonstrating non-allocating skip",
	ArgsUsage: "<file.nbt>",
	Flags: []cli.Flag{
		compressionFlag,
		cli.StringFlag{Name: "name", Usage: "only accept nodes with this name; everything else is skipped"},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 {
			return cli.NewExitError("usage: nbtdump scan [--name N] <file.nbt>", 1)
		}
		r, closeAll, err := openReader(c.Args().First(), c.String("gzip"))
		if err != nil {
			return err
		}
		defer closeAll()

		filter := nbt.NoneFilter()
		if name := c.String("name"); name != "" {
			filter = nbt.NameAnywhereFilter(name)
		}

		fr, err := r.ReadFiltered(filter, true)
		if err != nil {
			return err
		}
		defer func() {
			if err := fr.Close(); err != nil {
				log.Printf("closing filtered reader: %v", err)
			}
		}()

		bar := progressbar.Default(-1, "scanning")
		accepted := 0
		for {
			node, err := fr.Next()
			if err == nbt.ErrStreamDone {
				break
			}
			if err != nil {
				return err
			}
			accepted++
			_ = bar.Add(1)
			_ = node
		}
		_ = bar.Finish()
		fmt.Printf("\naccepted %d node(s)\n", accepted)
		return nil
	},
}

func printTree(n *nbt.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	kindColor := color.New(color.FgCyan)
	valColor := color.New(color.FgYellow)
	nameColor := color.New(color.FgGreen)

	label := kindColor.Sprint(n.Kind.String())
	if n.Name != "" {
		label = nameColor.Sprint(n.Name) + " " + label
	}

	switch {
	case n.Kind.IsContainer():
		children, _ := n.Children()
		fmt.Printf("%s%s (%d child(ren))\n", indent, label, len(children))
		for _, c := range children {
			printTree(c, depth+1)
		}
	default:
		fmt.Printf("%s%s = %s\n", indent, label, valColor.Sprint(scalarString(n)))
	}
}

func scalarString(n *nbt.Node) string {
	switch n.Kind {
	case nbt.Int8:
		v, _ := n.Int8()
		return fmt.Sprintf("%d", v)
	case nbt.Int16:
		v, _ := n.Int16()
		return fmt.Sprintf("%d", v)
	case nbt.Int32:
		v, _ := n.Int32()
		return fmt.Sprintf("%d", v)
	case nbt.Int64:
		v, _ := n.Int64()
		return fmt.Sprintf("%d", v)
	case nbt.Float32:
		v, _ := n.Float32()
		return fmt.Sprintf("%g", v)
	case nbt.Float64:
		v, _ := n.Float64()
		return fmt.Sprintf("%g", v)
	case nbt.String:
		v, _ := n.Str()
		return v
	case nbt.Int8Array:
		v, _ := n.Int8Slice()
		return fmt.Sprintf("%d byte(s)", len(v))
	case nbt.Int32Array:
		v, _ := n.Int32Slice()
		return fmt.Sprintf("%d int32(s)", len(v))
	case nbt.Int64Array:
		v, _ := n.Int64Slice()
		return fmt.Sprintf("%d int64(s)", len(v))
	default:
		return ""
	}
}
