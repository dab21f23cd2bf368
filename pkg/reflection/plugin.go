package reflection

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"plugin"
	"reflect"
	"strings"
)

// DefaultAssemblySymbol is the exported plugin variable holding its assembly:
//
//	var Assembly = reflection.NewAssembly("billing", Invoice{}, (*Gateway)(nil))
const DefaultAssemblySymbol = "Assembly"

// pluginExt is the file extension of Go plugins, matched case-insensitively.
const pluginExt = ".so"

// AssemblyTypes pairs an assembly with a subset of its types.
type AssemblyTypes struct {
	Assembly *Assembly
	Types    []reflect.Type
}

// LoadAssembly opens the Go plugin at path, reads the assembly it exports
// under symbol (DefaultAssemblySymbol when empty) and registers it in the
// default domain.
func LoadAssembly(path, symbol string) (*Assembly, error) {
	if symbol == "" {
		symbol = DefaultAssemblySymbol
	}

	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plugin %s: %w", path, err)
	}
	sym, err := p.Lookup(symbol)
	if err != nil {
		return nil, errors.Join(ErrInvalidPlugin, err)
	}

	var asm *Assembly
	switch s := sym.(type) {
	case *Assembly:
		asm = s
	case **Assembly:
		asm = *s
	}
	if asm == nil {
		return nil, fmt.Errorf("%w: symbol %s in %s is %T", ErrInvalidPlugin, symbol, path, sym)
	}

	Register(asm)
	return asm, nil
}

// AssembliesFromDirectory loads every plugin in dir, descending into
// subdirectories when recursive is set. Plugins that fail to load are reported
// in the joined error; the successfully loaded ones are still returned.
func AssembliesFromDirectory(dir string, recursive bool, symbol string) ([]*Assembly, error) {
	files, err := pluginFiles(dir, recursive)
	if err != nil {
		return nil, err
	}

	var (
		out  []*Assembly
		errs []error
	)
	for _, file := range files {
		asm, err := LoadAssembly(file, symbol)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, asm)
	}
	return out, errors.Join(errs...)
}

// TypesFromDirectory loads the plugins in dir and returns, per assembly, the
// types matching the interface name. Assemblies without matches are omitted.
func TypesFromDirectory(dir, iface string, recursive bool, symbol string) ([]AssemblyTypes, error) {
	assemblies, err := AssembliesFromDirectory(dir, recursive, symbol)
	out := make([]AssemblyTypes, 0, len(assemblies))
	for _, asm := range assemblies {
		if types := TypesNamed(asm, iface); len(types) > 0 {
			out = append(out, AssemblyTypes{Assembly: asm, Types: types})
		}
	}
	return out, err
}

// ObjectsFromDirectory loads every plugin under dir, recursively, and
// instantiates the types usable as T.
func ObjectsFromDirectory[T any](dir, symbol string) ([]T, error) {
	assemblies, err := AssembliesFromDirectory(dir, true, symbol)
	out := []T{}
	for _, asm := range assemblies {
		out = append(out, ObjectsFrom[T](asm)...)
	}
	return out, err
}

// pluginFiles lists the plugin files in dir.
func pluginFiles(dir string, recursive bool) ([]string, error) {
	var files []string
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && isPluginFile(e.Name()) {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
		return files, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isPluginFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func isPluginFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), pluginExt)
}
