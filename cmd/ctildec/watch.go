package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/ctilde/ctilde/internal/build"
	"github.com/ctilde/ctilde/internal/config"
)

// runWatch recompiles on every change to a file in the entry's #include
// closure (SPEC_FULL §3.3), re-arming the watch list after each rebuild
// since an edit can add or drop an #include and change the closure itself.
func runWatch(comp *build.Compilation, opts config.Options) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("ctildec: watch: %v", err)
	}
	defer w.Close()

	armWatch(w, opts.EntryPath)
	fmt.Fprintf(os.Stderr, "ctildec: watching %s for changes\n", opts.EntryPath)
	runOnce(comp, opts)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			fmt.Fprintf(os.Stderr, "ctildec: %s changed, recompiling\n", ev.Name)
			armWatch(w, opts.EntryPath)
			runOnce(comp, opts)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("ctildec: watch: %v", err)
		}
	}
}

// armWatch adds every file in entry's current include closure to w,
// tolerating discovery failures (e.g. a syntax error leaving a broken
// #include) by falling back to watching just the entry file.
func armWatch(w *fsnotify.Watcher, entry string) {
	files, err := closureFiles(entry)
	if err != nil || len(files) == 0 {
		_ = w.Add(entry)
		return
	}
	for _, f := range files {
		_ = w.Add(f)
	}
}
