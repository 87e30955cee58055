// validate-content checks a story content file for graph defects: dangling
// choice targets, missing start nodes, dead ends without ending metadata.
// Run it in the content pipeline before publishing; a non-zero exit means the
// file must not ship.
package main

import (
	"flag"
	"fmt"
	"os"

	"finsakhi-server/internal/content"
	appLogger "finsakhi-server/internal/logger"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "data/stories.json", "story content file to validate")
	verbose := flag.Bool("v", false, "print a per-path summary")
	flag.Parse()

	logger, err := appLogger.New(appLogger.Config{Level: "warn", Encoding: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := content.Load(*file, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		os.Exit(1)
	}
	if err := store.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		for _, info := range store.Paths("english") {
			path, pathErr := store.Path(info.ID)
			if pathErr != nil {
				logger.Error("Path disappeared during summary", zap.String("pathID", info.ID), zap.Error(pathErr))
				continue
			}
			endings, good := 0, 0
			for _, node := range path.Nodes {
				if node.Ending != nil {
					endings++
					if node.Ending.Good {
						good++
					}
				}
			}
			fmt.Printf("%-10s %3d nodes, %d endings (%d good)  %s\n",
				info.ID, len(path.Nodes), endings, good, info.Title)
		}
	}

	fmt.Printf("OK: %s\n", *file)
}
