package doctor

import (
	"context"
	"errors"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/git-time-machine/internal/core/config"
)

// ConfigCheck validates the loaded configuration, including checks that
// touch the filesystem.
type ConfigCheck struct {
	cfg  *config.Config
	path string
}

// NewConfigCheck creates a new config check.
func NewConfigCheck(cfg *config.Config, path string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, path: path}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	err := c.cfg.ValidateDeep(c.path)
	if err == nil {
		detail := c.path
		if detail == "" {
			detail = "defaults"
		}
		result.Items = append(result.Items, CheckItem{
			Label:  "config",
			Status: StatusPass,
			Detail: detail,
		})
		return result
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		result.Items = append(result.Items, CheckItem{
			Label:  "config",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	for _, fe := range fieldErrs {
		result.Items = append(result.Items, CheckItem{
			Label:  fe.Field,
			Status: StatusFail,
			Detail: fe.Err.Error(),
		})
	}

	return result
}
