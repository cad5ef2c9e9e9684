// Command bookcheck prints the book moves stored for one position hash.
//
//	bookcheck [-min-weight N] [-seed S] [-fen FEN] <book> <key>
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"text/tabwriter"

	"polybook/internal/book"
	"polybook/internal/notation"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bookcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		minWeight = fs.Uint("min-weight", 0, "skip moves with a lower weight")
		seed      = fs.Uint64("seed", 0, "seed for the random pick (0 = random)")
		fen       = fs.String("fen", "", "position FEN, adds SAN for each move")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: bookcheck [flags] <book> <key>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	if *minWeight > 0xffff {
		fmt.Fprintln(stderr, "min-weight must fit in 16 bits")
		return 2
	}
	key, err := book.ParseKey(fs.Arg(1))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	b, err := book.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, "load error:", err)
		return 1
	}
	defer b.Release()

	st := b.Stats()
	fmt.Fprintf(stdout, "book: %s (%d records", st.Path, st.Records)
	if st.TrailingBytes > 0 {
		fmt.Fprintf(stdout, ", %d trailing bytes ignored", st.TrailingBytes)
	}
	fmt.Fprintln(stdout, ")")

	entries := b.Entries(key, uint16(*minWeight))
	fmt.Fprintf(stdout, "key %s: %d moves\n", book.FormatKey(key), len(entries))
	if len(entries) == 0 {
		return 0
	}

	var sans []string
	if *fen != "" {
		pos, err := notation.Position(*fen)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		for _, e := range entries {
			a, err := notation.Annotate(pos, e.Move)
			if err != nil {
				sans = append(sans, "?")
				continue
			}
			sans = append(sans, a.SAN)
		}
	}

	total := 0
	for _, e := range entries {
		total += int(e.Weight)
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "move\tsan\tweight\tshare\tlearn")
	for i, e := range entries {
		san := "-"
		if sans != nil {
			san = sans[i]
		}
		share := 0.0
		if total > 0 {
			share = float64(e.Weight) * 100 / float64(total)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f%%\t%d\n", e.Move.UCI(), san, e.Weight, share, e.Learn)
	}
	_ = tw.Flush()

	sel := book.NewRandomSelector()
	if *seed != 0 {
		sel = book.NewSelector(rand.NewPCG(*seed, *seed))
	}
	pick, err := sel.PickEntry(entries)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, "pick:", pick.Move.UCI())
	return 0
}
