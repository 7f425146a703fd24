package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watch recompiles input whenever its containing directory reports a write
// to it, per the --watch flag promised in SPEC_FULL.md §2.2. It runs until
// interrupted; the first build runs immediately rather than waiting for a
// change.
func watch(input string, opts Options) error {
	if err := buildOnce(input, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(input)
	if err := w.Add(dir); err != nil {
		return err
	}

	target := filepath.Clean(input)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := buildOnce(input, opts); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "Error [watch]:", err)
		}
	}
}

func buildOnce(input string, opts Options) error {
	fmt.Fprintf(os.Stderr, "lumenc: building %s\n", input)
	if err := Compile(opts); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "lumenc: build succeeded")
	return nil
}
