package cli

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/keysweep/internal/config"
	"github.com/mrz1836/keysweep/internal/errors"
)

// configSources lists the files that could have contributed to cfg.
type configSources struct {
	Global  string
	Project string
}

// resolveSources reports which config files exist, in precedence order.
func resolveSources(explicitPath string) configSources {
	var src configSources
	if path, err := config.GlobalConfigPath(); err == nil && config.FileExists(path) {
		src.Global = path
	}
	switch {
	case explicitPath != "":
		src.Project = explicitPath
	case config.FileExists(config.ProjectConfigPath()):
		src.Project = config.ProjectConfigPath()
	}
	return src
}

// showConfig prints the effective configuration as YAML, preceded by a
// comment naming the files it was read from.
func showConfig(w io.Writer, cfg *config.Config, explicitPath string) error {
	src := resolveSources(explicitPath)
	_, _ = fmt.Fprintf(w, "# global:  %s\n# project: %s\n", orNone(src.Global), orNone(src.Project))

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.Wrap(err, "failed to encode configuration")
	}
	return errors.Wrap(enc.Close(), "failed to flush configuration")
}

func orNone(path string) string {
	if path == "" {
		return "(none)"
	}
	return path
}
