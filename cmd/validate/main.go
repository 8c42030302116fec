package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/escape-room/pkg/scene"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <catalog.json> [catalog.json ...]\n", os.Args[0])
		os.Exit(1)
	}

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run validates each file and returns the process exit code.
func run(files []string, stdout, stderr io.Writer) int {
	code := 0
	for _, filename := range files {
		fmt.Fprintf(stdout, "Validating %s...\n", filename)

		c, err := validateFile(filename)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed: %v\n", err)
			code = 1
			continue
		}
		if c.RoomCount() == 0 {
			fmt.Fprintf(stderr, "Warning: %s has no rooms, players go straight to the escape scene\n", filename)
		}
		fmt.Fprintf(stdout, "Catalog %q is valid! (%d rooms)\n", c.Name(), c.RoomCount())
	}
	return code
}

func validateFile(filename string) (*scene.Catalog, error) {
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return nil, fmt.Errorf("catalog file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidCatalogFilename(nameWithoutExt) {
		return nil, fmt.Errorf("catalog filename '%s' must be lowercase snake_case (e.g., my_room.json, not my-room.json or MyRoom.json)", baseName)
	}

	c, err := scene.Load(filename)
	if err != nil {
		return nil, err
	}
	return c, nil
}

var validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidCatalogFilename(name string) bool {
	// Allow 'x.' prefix for experimental catalogs
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}
