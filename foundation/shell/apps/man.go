// File: man.go
// Title: Man App
// Description: Shows help for a single app or lists all registered
//              apps with their descriptions.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial man app

package apps

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/msto63/gdsh/foundation/shell/app"
	"github.com/msto63/gdsh/foundation/shell/parser"
	"github.com/msto63/gdsh/foundation/shell/registry"
	"github.com/msto63/gdsh/foundation/shell/session"
)

// Man shows help for registered apps
type Man struct {
	registry *registry.Registry
}

// Name implements app.App
func (m *Man) Name() string { return "man" }

// Description implements app.App
func (m *Man) Description() string { return "shows help for an app, or lists all apps" }

// Options implements app.App
func (m *Man) Options() map[string]parser.OptionSpec { return nil }

// Exec implements app.App
func (m *Man) Exec(ctx context.Context, inv *parser.Invocation, sess *session.Session, out app.Output) (string, error) {
	name := inv.Arg(0)
	if name == "" {
		var lines []string
		for _, a := range m.registry.Apps() {
			lines = append(lines, fmt.Sprintf("%-8s %s", a.Name(), a.Description()))
		}
		return strings.Join(lines, "\n"), nil
	}

	target, err := m.registry.Find(name)
	if err != nil {
		return "", err
	}

	lines := []string{target.Name() + ": " + target.Description()}
	opts := target.Options()
	if len(opts) > 0 {
		flags := make([]string, 0, len(opts))
		for flag := range opts {
			flags = append(flags, flag)
		}
		sort.Strings(flags)
		lines = append(lines, "options:")
		for _, flag := range flags {
			spec := opts[flag]
			usage := "-" + flag
			if spec.HasValue {
				usage += " <value>"
			}
			lines = append(lines, fmt.Sprintf("  %-12s %s", usage, spec.Description))
		}
	}
	return strings.Join(lines, "\n"), nil
}
