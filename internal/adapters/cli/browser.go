package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const clearScreen = "\033[H\033[2J"

// Browser runs the interactive menu loop on top of a CatalogAdapter.
type Browser struct {
	adapter *CatalogAdapter
	in      *bufio.Reader
	out     io.Writer
	clear   bool
}

// NewBrowser creates a Browser reading choices from in.
// When clear is set the screen is wiped before every page.
func NewBrowser(adapter *CatalogAdapter, in io.Reader, out io.Writer, clear bool) *Browser {
	return &Browser{
		adapter: adapter,
		in:      bufio.NewReader(in),
		out:     out,
		clear:   clear,
	}
}

// Run shows the main menu until the user exits or input ends.
func (b *Browser) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		b.page()
		b.menu()

		choice, ok := b.readLine()
		if !ok {
			fmt.Fprintln(b.out, "\nGoodbye!")
			return nil
		}

		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "1":
			b.random(ctx)
		case "2":
			b.list(ctx)
		case "3":
			b.search(ctx)
		case "4":
			b.stats(ctx)
		case "5", "q", "exit":
			fmt.Fprintln(b.out, "\nGoodbye!")
			return nil
		default:
			fmt.Fprintln(b.out, "\nInvalid choice. Please try again.")
			b.pause()
		}
	}
}

func (b *Browser) menu() {
	writeLines(b.out, bannerArt)
	fmt.Fprintln(b.out)
	b.adapter.Box("🐵 MONKEY SPECIES EXPLORER 🐵")
	fmt.Fprintln(b.out)
	fmt.Fprintln(b.out, "Choose an option:")
	fmt.Fprintln(b.out)
	fmt.Fprintln(b.out, "  1. 🎲 Get Random Monkey")
	fmt.Fprintln(b.out, "  2. 📋 List All Monkeys")
	fmt.Fprintln(b.out, "  3. 🔍 Search by Name")
	fmt.Fprintln(b.out, "  4. 📊 View Access Counts")
	fmt.Fprintln(b.out, "  5. 🚪 Exit")
	fmt.Fprintln(b.out)
	fmt.Fprint(b.out, "Enter your choice (1-5): ")
}

func (b *Browser) random(ctx context.Context) {
	b.page()
	b.adapter.Box("🎲 RANDOM MONKEY PICKER 🎲")
	fmt.Fprintln(b.out)

	if err := b.adapter.Random(ctx); err != nil {
		b.adapter.Miss(err)
	}
	b.pause()
}

func (b *Browser) list(ctx context.Context) {
	b.page()
	b.adapter.Box("📋 ALL MONKEY SPECIES 📋")
	fmt.Fprintln(b.out)

	species := b.adapter.List(ctx)
	if len(species) == 0 {
		b.pause()
		return
	}

	fmt.Fprint(b.out, "Enter monkey number to view details (or press Enter to go back): ")
	input, _ := b.readLine()

	index, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || index < 1 || index > len(species) {
		return
	}

	// selecting from the list is a lookup, so it goes through FindByID and counts
	b.page()
	if err := b.adapter.Show(ctx, species[index-1].ID); err != nil {
		b.adapter.Miss(err)
	}
	b.pause()
}

func (b *Browser) search(ctx context.Context) {
	b.page()
	b.adapter.Box("🔍 SEARCH MONKEY BY NAME 🔍")
	fmt.Fprintln(b.out)

	fmt.Fprint(b.out, "Enter monkey name: ")
	name, _ := b.readLine()

	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(b.out, "Invalid input. Please try again.")
		b.pause()
		return
	}

	err := b.adapter.Find(ctx, strings.TrimSpace(name))
	if errors.Is(err, ErrNotFound) {
		b.adapter.Miss(err)
	} else if err != nil {
		fmt.Fprintln(b.out, err)
	}
	b.pause()
}

func (b *Browser) stats(ctx context.Context) {
	b.page()
	b.adapter.Box("📊 MONKEY ACCESS STATISTICS 📊")
	fmt.Fprintln(b.out)

	if b.adapter.Stats(ctx) == 0 {
		b.pause()
		return
	}

	fmt.Fprint(b.out, "\nEnter a monkey id to reset its count, 'all' to reset everything, or press Enter to go back: ")
	input, _ := b.readLine()
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return
	case strings.EqualFold(input, "all"):
		b.adapter.ResetStats(ctx, "")
	default:
		b.adapter.ResetStats(ctx, input)
	}
	b.pause()
}

func (b *Browser) pause() {
	fmt.Fprintln(b.out, "\nPress Enter to continue...")
	b.readLine()
}

func (b *Browser) page() {
	if b.clear {
		fmt.Fprint(b.out, clearScreen)
	}
}

// readLine returns the next input line without its terminator.
// ok is false once input is exhausted and nothing was read.
func (b *Browser) readLine() (string, bool) {
	line, err := b.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}
