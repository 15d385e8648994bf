package cli

import (
	"context"
	"log"

	"github.com/fsnotify/fsnotify"

	"solgate/internal/reveal"
)

// WatchRegistry re-reads the registry file whenever it is written and hands
// the rebuilt registry (embedded defaults overlaid by the file) to onChange.
//
// A file that becomes unreadable or invalid mid-session is reported and the
// previous registry stays in effect. The watcher stops when ctx is done.
func WatchRegistry(ctx context.Context, path string, onChange func(*reveal.Registry)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write {
					registry, err := buildRegistry(path)
					if err != nil {
						log.Printf("Error reloading registry: %v", err)
						continue
					}
					onChange(registry)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Error watching registry file: %v", err)
			}
		}
	}()

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return err
	}

	return nil
}
