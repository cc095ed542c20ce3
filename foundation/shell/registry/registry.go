// File: registry.go
// Title: Shell App Registry
// Description: Keeps the set of installed shell apps, resolves names
//              with unambiguous-prefix expansion and supports operator
//              aliases loaded from a YAML file.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial registry with prefix expansion and aliases

package registry

import (
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
	gdshlog "github.com/msto63/gdsh/foundation/core/log"
	"github.com/msto63/gdsh/foundation/shell/app"
)

// Registry holds the installed apps of a shell
type Registry struct {
	apps    map[string]app.App
	aliases map[string]string
	logger  *gdshlog.Logger
	mutex   sync.RWMutex
}

// New creates an empty registry
func New(logger *gdshlog.Logger) *Registry {
	if logger == nil {
		logger = gdshlog.GetDefault()
	}
	return &Registry{
		apps:    make(map[string]app.App),
		aliases: make(map[string]string),
		logger:  logger.WithName("registry"),
	}
}

// Register installs an app under its name
func (r *Registry) Register(a app.App) error {
	name := strings.ToLower(strings.TrimSpace(a.Name()))
	if name == "" {
		return gdsherror.New("app name cannot be empty").
			WithCode(gdsherror.CodeInternal)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.apps[name]; exists {
		return gdsherror.Newf("app %s already registered", name).
			WithCode(gdsherror.CodeInternal)
	}

	r.apps[name] = a

	r.logger.Debug("app registered", gdshlog.Fields{"app": name})
	return nil
}

// Find resolves a name to an installed app. Aliases are expanded
// first, then an exact name match, then an unambiguous prefix match.
// An ambiguous prefix fails listing the candidates.
func (r *Registry) Find(name string) (app.App, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, gdsherror.New("no app name given").
			WithCode(gdsherror.CodeUnknownApp)
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if target, ok := r.aliases[name]; ok {
		name = target
	}

	if a, ok := r.apps[name]; ok {
		return a, nil
	}

	var candidates []string
	for installed := range r.apps {
		if strings.HasPrefix(installed, name) {
			candidates = append(candidates, installed)
		}
	}
	sort.Strings(candidates)

	switch len(candidates) {
	case 1:
		return r.apps[candidates[0]], nil
	case 0:
		return nil, gdsherror.Newf("unknown command %s (may be %s)", name,
			strings.Join(r.namesLocked(), ", ")).
			WithCode(gdsherror.CodeUnknownApp)
	default:
		return nil, gdsherror.Newf("ambiguous command %s (may be %s)", name,
			strings.Join(candidates, ", ")).
			WithCode(gdsherror.CodeUnknownApp)
	}
}

// Names returns the installed app names, sorted
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.apps))
	for name := range r.apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apps returns the installed apps sorted by name
func (r *Registry) Apps() []app.App {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	apps := make([]app.App, 0, len(r.apps))
	for _, name := range r.namesLocked() {
		apps = append(apps, r.apps[name])
	}
	return apps
}

// RegisterAlias maps an alias to an installed app name
func (r *Registry) RegisterAlias(alias, target string) error {
	alias = strings.ToLower(strings.TrimSpace(alias))
	target = strings.ToLower(strings.TrimSpace(target))

	if alias == "" || target == "" {
		return gdsherror.New("alias and target cannot be empty").
			WithCode(gdsherror.CodeInvalidArgument)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.apps[target]; !ok {
		return gdsherror.Newf("alias target %s is not an installed app", target).
			WithCode(gdsherror.CodeInvalidArgument)
	}
	if _, ok := r.apps[alias]; ok {
		return gdsherror.Newf("alias %s shadows an installed app", alias).
			WithCode(gdsherror.CodeInvalidArgument)
	}

	r.aliases[alias] = target

	r.logger.Debug("alias registered", gdshlog.Fields{
		"alias":  alias,
		"target": target,
	})
	return nil
}

// Aliases returns a copy of the alias table
func (r *Registry) Aliases() map[string]string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	aliases := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		aliases[k] = v
	}
	return aliases
}

// LoadAliasFile loads alias definitions from a YAML file of the form
//
//	aliases:
//	  dir: ls
//	  where: pwd
//
// A missing file is not an error; the shell simply starts without
// operator aliases.
func (r *Registry) LoadAliasFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return gdsherror.Wrapf(err, "failed to read alias file %s", path).
			WithCode(gdsherror.CodeConfig)
	}

	var doc struct {
		Aliases map[string]string `yaml:"aliases"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return gdsherror.Wrapf(err, "failed to parse alias file %s", path).
			WithCode(gdsherror.CodeConfig)
	}

	for alias, target := range doc.Aliases {
		if err := r.RegisterAlias(alias, target); err != nil {
			return err
		}
	}

	r.logger.Info("alias file loaded", gdshlog.Fields{
		"path":  path,
		"count": len(doc.Aliases),
	})
	return nil
}
