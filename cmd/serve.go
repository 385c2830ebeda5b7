package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Bitlatte/quill/internal/site"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site locally and rebuild on changes",
	Long: `The serve command performs an initial build, starts a local web
server over the output directory, and watches the content, layouts,
static, and data directories, rebuilding the site whenever a file
changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b := site.New(sourceDir, cfg, logger)

		if err := runBuild(); err != nil {
			return fmt.Errorf("initial build: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create file watcher: %w", err)
		}
		defer watcher.Close()

		go watchLoop(watcher)

		for _, dir := range []string{"content", "layouts", "static", "data"} {
			root := filepath.Join(sourceDir, dir)
			if _, err := os.Stat(root); os.IsNotExist(err) {
				continue
			}
			err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					log.Printf("walk %s: %v", path, err)
					return nil
				}
				if d.IsDir() {
					if err := watcher.Add(path); err != nil {
						log.Printf("watch %s: %v", path, err)
					}
				}
				return nil
			})
			if err != nil {
				log.Printf("setting up watch for %s: %v", root, err)
			}
		}

		addr := fmt.Sprintf(":%d", servePort)
		outputDir := b.OutputDir()
		log.Printf("Serving %s on http://localhost%s", outputDir, addr)
		log.Println("Press Ctrl+C to stop.")

		fs := http.FileServer(http.Dir(outputDir))
		http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
				if _, err := os.Stat(filepath.Join(outputDir, r.URL.Path, "index.html")); os.IsNotExist(err) {
					http.NotFound(w, r)
					return
				}
			}
			// No caching during development.
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
			fs.ServeHTTP(w, r)
		})

		return http.ListenAndServe(addr, nil)
	},
}

// watchLoop rebuilds after filesystem events, debounced so a burst of
// writes (editor save, git checkout) triggers a single rebuild.
func watchLoop(watcher *fsnotify.Watcher) {
	const debounce = 500 * time.Millisecond
	var timer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Printf("Change detected: %s (%s)", event.Name, event.Op)

			// New subdirectories are not watched automatically.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						log.Printf("watch %s: %v", event.Name, err)
					}
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				log.Println("Rebuilding...")
				if err := runBuild(); err != nil {
					log.Printf("rebuild failed: %v", err)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 1313, "port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
