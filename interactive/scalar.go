// ABOUTME: Retry-until-valid validators for integers, non-negative floats and output paths
// ABOUTME: Each prints its question once, then re-reads until the answer passes its checks

package interactive

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// PathError is a path resolution failure whose message is shown to the user as-is
type PathError struct {
	msg string
}

func (e *PathError) Error() string {
	return e.msg
}

// Path resolution failures, in the order they are checked
var (
	ErrNoFileName   = &PathError{"Invalid path. Please enter a valid file name."}
	ErrNoParent     = &PathError{"Failed to get parent directory. Please enter a valid path."}
	ErrCanonicalize = &PathError{"Failed to canonicalize path. Please enter a valid path."}
	ErrNotDirectory = &PathError{"Parent path is not a directory. Please enter a valid path."}
	ErrNotText      = &PathError{"Failed to convert path to string. Please enter a valid path."}
)

// AskRange asks for a whole number in [minValue, maxValue]
func AskRange(p *Prompter, ask string, minValue, maxValue uint32) (uint32, error) {
	if minValue > maxValue {
		return 0, errors.Newf("invalid range: min %d is greater than max %d", minValue, maxValue)
	}

	p.Printf("%s (Between %d and %d):\n", ask, minValue, maxValue)

	for {
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}

		// One leading plus sign is accepted, as in "+5"
		digits := strings.TrimPrefix(strings.TrimSpace(line), "+")

		parsed, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			p.reject("Invalid input. Please enter a whole number.", line)

			continue
		}

		value := uint32(parsed)
		if value < minValue || value > maxValue {
			p.reject(fmt.Sprintf("Please enter a value between %d and %d.", minValue, maxValue), line)

			continue
		}

		p.log.Debug("range value accepted", zap.String("ask", ask), zap.Uint32("value", value))

		return value, nil
	}
}

// AskPositiveFloat asks for a finite number that is zero or greater
func AskPositiveFloat(p *Prompter, ask string) (float64, error) {
	p.Printf("%s (Between 0.0 and infinity):\n", ask)

	for {
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			p.reject("Invalid input. Please enter a number.", line)

			continue
		}

		if value < 0 {
			p.reject("Please enter a positive value.", line)

			continue
		}

		p.log.Debug("float value accepted", zap.String("ask", ask), zap.Float64("value", value))

		return value, nil
	}
}

// AskPath asks for a file path whose parent directory exists and returns it absolute.
// The file itself may or may not exist; nothing is created.
func AskPath(p *Prompter, ask string) (string, error) {
	p.Printf("%s:\n", ask)

	for {
		line, err := p.readLine()
		if err != nil {
			return "", err
		}

		path, err := ResolveOutputPath(strings.TrimSpace(line))
		if err != nil {
			p.reject(err.Error(), line)

			continue
		}

		p.log.Debug("path accepted", zap.String("ask", ask), zap.String("path", path))

		return path, nil
	}
}

// ResolveOutputPath joins the canonical form of path's parent directory with its file name.
// An empty parent means the working directory. The parent must exist and be a directory.
func ResolveOutputPath(path string) (string, error) {
	sep := string(filepath.Separator)

	// A trailing "." component names its parent: "sub/." is "sub"
	trimmed := strings.TrimRight(path, sep)
	for strings.HasSuffix(trimmed, sep+".") {
		trimmed = strings.TrimRight(strings.TrimSuffix(trimmed, sep+"."), sep)
	}

	if trimmed == "" || trimmed == filepath.VolumeName(trimmed) {
		return "", ErrNoFileName
	}

	dir, name := filepath.Split(trimmed)
	if name == "" || name == "." || name == ".." {
		return "", ErrNoFileName
	}

	if dir == "" {
		dir = "."
	} else if trimmedDir := strings.TrimRight(dir, sep); trimmedDir != filepath.VolumeName(trimmedDir) {
		dir = trimmedDir
	}

	if filepath.VolumeName(dir) == dir && !filepath.IsAbs(dir) {
		return "", ErrNoParent
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", ErrCanonicalize
	}

	parent, err := filepath.Abs(resolved)
	if err != nil {
		return "", ErrCanonicalize
	}

	info, err := os.Stat(parent)
	if err != nil || !info.IsDir() {
		return "", ErrNotDirectory
	}

	joined := filepath.Join(parent, name)
	if !utf8.ValidString(joined) {
		return "", ErrNotText
	}

	return joined, nil
}
