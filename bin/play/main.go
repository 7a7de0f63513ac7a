package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/zond/grue"
	"github.com/zond/grue/content"
	"github.com/zond/grue/session"
	"github.com/zond/grue/storage"
	"github.com/zond/grue/structs"
	"golang.org/x/term"
)

// lines reads commands from a stream that isn't a terminal.
type lines struct {
	io.Writer
	scanner *bufio.Scanner
}

func (l *lines) ReadLine() (string, error) {
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return l.scanner.Text(), nil
}

func loadWorld(path string) (*structs.World, error) {
	if path == "" {
		return content.Load()
	}
	return structs.LoadWorldFile(path)
}

func play(ctx context.Context, config session.Config, worldPath string) error {
	world, err := loadWorld(worldPath)
	if err != nil {
		return err
	}
	var t session.Terminal
	stdin := int(os.Stdin.Fd())
	if term.IsTerminal(stdin) {
		state, err := term.MakeRaw(stdin)
		if err != nil {
			return grue.WithStack(err)
		}
		defer term.Restore(stdin, state)
		t = term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{os.Stdin, os.Stdout}, "> ")
	} else {
		t = &lines{Writer: os.Stdout, scanner: bufio.NewScanner(os.Stdin)}
	}
	s, err := session.New(ctx, t, world, config)
	if err != nil {
		return err
	}
	if err := s.Run(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func main() {
	owner := "player"
	if u, err := user.Current(); err == nil {
		owner = u.Username
	}
	dir := flag.String("dir", filepath.Join(os.Getenv("HOME"), ".grue"), "Where to keep saved games and transcripts.")
	world := flag.String("world", "", "Content file to play instead of the embedded world.")
	seed := flag.Uint64("seed", 0, "Random seed, to replay a game. Zero picks one.")
	flag.StringVar(&owner, "name", owner, "Whose saved games to use.")
	noSave := flag.Bool("nosave", false, "Play without saved games or transcripts.")

	flag.Parse()

	ctx := context.Background()
	config := session.Config{
		Owner: owner,
		Seed:  *seed,
	}
	if !*noSave {
		if err := os.MkdirAll(*dir, 0700); err != nil {
			log.Fatal(err)
		}
		store, err := storage.New(ctx, filepath.Join(*dir, "saves.sqlite"))
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()
		config.Store = store
		config.ScriptDir = filepath.Join(*dir, "transcripts")
	}
	if err := play(ctx, config, *world); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Println(grue.StackTrace(err))
		os.Exit(1)
	}
}
