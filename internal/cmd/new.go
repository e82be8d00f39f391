package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pagescms/cli/internal/content"
	oerrors "github.com/pagescms/cli/internal/errors"
	"github.com/pagescms/cli/internal/filename"
	"github.com/pagescms/cli/internal/model"
	"github.com/pagescms/cli/internal/output"
	"github.com/pagescms/cli/internal/schema"
)

var (
	newSetFlags    []string
	newDryRunFlag  bool
	newPatternFlag string
)

// NewNewCmd creates the new command.
func NewNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a content file for a collection entry",
		Long: `Create a new content file for a collection entry.

The model is built from the --set values and schema defaults, sanitized, named
with the entry's filename pattern and written under the entry path. Existing
files are never overwritten.

Values are parsed as YAML scalars or flow collections, so true, 3 and
[a, b] keep their types. Dotted keys address nested object fields.

Examples:
  pcms new posts --set title="Hello World" --set tags="[go, cms]"
  pcms new posts --set title=Draft --set author.name=Jane --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: runNew,
	}

	cmd.Flags().StringArrayVar(&newSetFlags, "set", nil, "Set a field value (key=value, repeatable)")
	cmd.Flags().BoolVar(&newDryRunFlag, "dry-run", false, "Print the file instead of writing it")
	cmd.Flags().StringVar(&newPatternFlag, "pattern", "", "Filename pattern (default: entry filename setting)")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	s, err := loadSite()
	if err != nil {
		return err
	}

	entry, err := s.entry(args[0])
	if err != nil {
		return err
	}
	if entry.Type == schema.EntryFile {
		return oerrors.NewValidationError(
			fmt.Sprintf("entry %q is a single file", entry.Name),
			s.PagesPath, "type",
			"only collection entries can hold new files",
		)
	}

	values, err := parseSetFlags(newSetFlags)
	if err != nil {
		return err
	}

	log := output.EntryLogger(entry.Name)

	m := newBuilder().CreateModel(entry.Fields, values)
	pattern := filenamePattern(newPatternFlag, entry)
	name, err := filename.New(filename.WithClock(now)).Generate(pattern, entry, m)
	if err != nil {
		return fmt.Errorf("rendering %q: %w", pattern, err)
	}

	sanitized, _ := model.Sanitize(m)

	format := content.DetectFormat(name)
	if entry.Format != "" {
		if f, ok := content.ParseFormat(entry.Format); ok {
			format = f
		} else {
			log.Warn("unknown entry format, using file extension", "format", entry.Format)
		}
	}

	data, err := content.Marshal(format, entry.Fields, sanitized, nil)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	target := filepath.Join(s.Root, entry.Path, name)
	w := cmd.OutOrStdout()

	if newDryRunFlag {
		fmt.Fprintln(w, output.FormatFileLine(target, output.StatusWouldWrite))
		_, err := w.Write(data)
		return err
	}

	if err := writeNewFile(target, data); err != nil {
		return err
	}

	log.Info("content file written", "path", target)
	fmt.Fprintln(w, output.FormatFileLine(target, output.StatusCreated))
	return nil
}

// writeNewFile creates path with data, failing if it already exists.
func writeNewFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		if os.IsPermission(err) {
			return &oerrors.DetailError{
				Type:    "permission denied",
				Message: "could not create content directory",
				Context: map[string]string{"path": dir},
				Cause:   fmt.Errorf("%w: %w", oerrors.ErrPermission, err),
			}
		}
		return fmt.Errorf("creating content directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return oerrors.NewExistsError("content file already exists", path,
				"pick another title or pass --pattern")
		}
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// parseSetFlags turns key=value pairs into a content mapping. Dotted keys
// create nested mappings.
func parseSetFlags(pairs []string) (map[string]any, error) {
	out := make(map[string]any)
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, invalidFlag("set", pair, "use key=value")
		}

		value := parseSetValue(raw)

		if err := setPath(out, strings.Split(key, "."), value); err != nil {
			return nil, invalidFlag("set", pair, err.Error())
		}
	}
	return out, nil
}

// parseSetValue decodes raw as a YAML scalar or flow collection. Text that
// only parses as an implicit mapping, such as "Hello: World", stays a string.
func parseSetValue(raw string) any {
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	if _, isMap := value.(map[string]any); isMap && !strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return raw
	}
	return value
}

func setPath(m map[string]any, keys []string, value any) error {
	for _, k := range keys[:len(keys)-1] {
		next, exists := m[k]
		if !exists {
			child := make(map[string]any)
			m[k] = child
			m = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%q already holds a value", k)
		}
		m = child
	}
	m[keys[len(keys)-1]] = value
	return nil
}
