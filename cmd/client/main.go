package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/NabeelAhmed1721/visionary/internal/client"
	"github.com/NabeelAhmed1721/visionary/internal/config"
	"github.com/NabeelAhmed1721/visionary/internal/prompts"
	"github.com/NabeelAhmed1721/visionary/internal/store"
)

const usage = `commands:
  list                 show the gallery, newest first
  search <text>        filter by name or prompt
  name <text>          set your name
  prompt <text>        set the prompt
  surprise             pick a random prompt
  generate             generate an image for the prompt
  share                share the generated image with the community
  download <id>        save a post's image to the current directory
  quit`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	list, err := prompts.Load(cfg.PromptsFile)
	if err != nil {
		log.Fatal(err)
	}

	api := client.NewHTTPClient(cfg.APIURL, nil)
	if err := run(context.Background(), os.Stdin, os.Stdout, api, list, client.SearchDelay); err != nil {
		log.Fatal(err)
	}
}

type terminal struct {
	out     io.Writer
	gallery *client.Gallery
	ctx     context.Context
}

func (t *terminal) Alert(message string) {
	fmt.Fprintf(t.out, "! %s\n", message)
}

// Navigate only knows the gallery; a successful share lands there.
func (t *terminal) Navigate(string) {
	if err := t.gallery.Load(t.ctx); err == nil {
		printPosts(t.out, t.gallery.Results())
	}
}

// lockedWriter serializes output from the prompt loop and search callbacks.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func run(ctx context.Context, in io.Reader, w io.Writer, api client.API, list *prompts.List, delay time.Duration) error {
	out := &lockedWriter{w: w}
	term := &terminal{out: out, ctx: ctx}
	term.gallery = client.NewGallery(api, term, client.GalleryOptions{
		Delay: delay,
		OnResults: func(text string, posts []store.Post) {
			fmt.Fprintf(out, "Showing results for %q\n", text)
			printPosts(out, posts)
		},
	})
	defer term.gallery.Close()
	flow := client.NewCreateFlow(api, list, term, term)

	fmt.Fprintln(out, usage)
	if err := term.gallery.Load(ctx); err == nil {
		printPosts(out, term.gallery.Results())
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
		case "list":
			if err := term.gallery.Load(ctx); err == nil {
				printPosts(out, term.gallery.Results())
			}
		case "search":
			term.gallery.Search(arg)
		case "name":
			flow.SetName(arg)
		case "prompt":
			flow.SetPrompt(arg)
		case "surprise":
			fmt.Fprintf(out, "prompt: %s\n", flow.SurpriseMe())
		case "generate":
			fmt.Fprintln(out, "Generating...")
			if err := flow.Generate(ctx); err == nil {
				fmt.Fprintf(out, "photo: %s\n", flow.Form().Photo)
			}
		case "share":
			fmt.Fprintln(out, "Sharing...")
			_ = flow.Share(ctx)
		case "download":
			p, ok := term.gallery.Find(arg)
			if !ok {
				term.Alert("no post with id " + arg)
				continue
			}
			path, err := term.gallery.Download(ctx, p, ".")
			if err != nil {
				term.Alert(err.Error())
				continue
			}
			fmt.Fprintf(out, "saved %s\n", path)
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintln(out, usage)
		}
	}
	return scanner.Err()
}

func printPosts(out io.Writer, posts []store.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(out, "No posts yet")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPROMPT\tPHOTO")
	for _, p := range posts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, client.DisplayName(p), p.Prompt, p.Photo)
	}
	_ = w.Flush()
}
