package shapes

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	separatorRe = regexp.MustCompile(`(?m)^-{3,}[ \t]*$`)
	nameRe      = regexp.MustCompile(`^name:\s*(\S+)\s*$`)
)

// LoadTemplates loads shape templates from a list of paths (files or
// directories). Each file holds one or more drawings separated by a line of
// three or more dashes. A drawing may start with a "name: <id>" line; unnamed
// drawings are called "<file>#<n>".
func LoadTemplates(paths ...string) ([]Shape, error) {
	var templates []Shape

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access path %s: %w", path, err)
		}

		if info.IsDir() {
			files, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read dir %s: %w", path, err)
			}
			for _, entry := range files {
				if entry.IsDir() {
					continue
				}
				s, err := loadFile(filepath.Join(path, entry.Name()))
				if err != nil {
					return nil, err
				}
				templates = append(templates, s...)
			}
		} else {
			s, err := loadFile(path)
			if err != nil {
				return nil, err
			}
			templates = append(templates, s...)
		}
	}

	return templates, nil
}

func loadFile(path string) ([]Shape, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	var contentBuilder strings.Builder
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		contentBuilder.WriteString(scanner.Text() + "\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan file %s: %w", path, err)
	}

	base := filepath.Base(path)
	var out []Shape
	for i, part := range separatorRe.Split(contentBuilder.String(), -1) {
		drawing := strings.Trim(part, "\n")
		if strings.TrimSpace(drawing) == "" {
			continue
		}

		name := fmt.Sprintf("%s#%d", base, i+1)
		lines := strings.SplitN(drawing, "\n", 2)
		if m := nameRe.FindStringSubmatch(strings.TrimSpace(lines[0])); m != nil {
			name = m[1]
			if len(lines) < 2 {
				return nil, fmt.Errorf("%s: shape %q: %w", path, name, ErrEmptyShape)
			}
			drawing = lines[1]
		}

		s, err := ParseShape(name, drawing)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, s)
	}

	return out, nil
}
