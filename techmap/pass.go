// Package techmap implements a generic technology-mapping and
// hierarchical-flattening engine: given a design of modules made of cells,
// and a map library of template modules, it replaces cells whose type
// matches a template with a parameter-specialized, name-prefixed copy of
// that template's body, iterating to a fixpoint. Flattening is the same
// engine applied with the design as its own map library.
//
// Techmap and Flatten are not safe to call concurrently against the same
// *rtlil.Design; each invocation owns the design's selection stack for its
// duration.
package techmap

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/synthkit/techmap/rtlil"
	"github.com/synthkit/techmap/stdcells"
)

// TechmapOptions configures a single Techmap invocation.
type TechmapOptions struct {
	// MapFiles lists external map-library files to load, in order, as
	// given via repeated "-map FILE" flags. When empty, the builtin
	// default library (package stdcells) is used instead.
	MapFiles []string

	// Open opens a named map file for reading; required when MapFiles is
	// non-empty. Kept as an indirection so the engine never touches the
	// filesystem directly.
	Open func(filename string) (io.ReadCloser, error)
}

// FlattenOptions configures a single Flatten invocation. Flatten has no
// options beyond the design's own selection, which the caller sets before
// invoking it.
type FlattenOptions struct{}

// Techmap runs the technology-mapping pass over d's currently selected
// modules, using the services in svc, until no module changes.
func Techmap(d *rtlil.Design, opts TechmapOptions, svc Services) error {
	mapDesign, err := loadMapDesign(opts, svc)
	if err != nil {
		return err
	}
	renameEscapedAutoModules(mapDesign)
	celltypeIndex := buildCelltypeIndex(mapDesign)

	if err := runFixpoint(d, allModules(d), mapDesign, celltypeIndex, false, svc); err != nil {
		return err
	}
	if svc.Logger != nil {
		svc.Logger.Info("No more expansions possible.")
	}
	return nil
}

// Flatten runs the technology-mapping pass using d itself as the map
// library (module inlining). If the design's current selection is full and
// exactly one module carries the "top" attribute, only that module is
// mapped and every other module is discarded afterward.
func Flatten(d *rtlil.Design, opts FlattenOptions, svc Services) error {
	celltypeIndex := map[rtlil.Identifier][]rtlil.Identifier{}
	for _, name := range d.ModuleNames() {
		celltypeIndex[name] = []rtlil.Identifier{name}
	}

	var top *rtlil.Module
	if d.FullSelection() {
		var tops []*rtlil.Module
		for _, name := range d.ModuleNames() {
			m, _ := d.Module(name)
			if m.BoolAttr("top") {
				tops = append(tops, m)
			}
		}
		if len(tops) == 1 {
			top = tops[0]
		}
	}

	targets := allModules(d)
	if top != nil {
		targets = []*rtlil.Module{top}
	}
	if err := runFixpoint(d, targets, d, celltypeIndex, true, svc); err != nil {
		return err
	}

	if top != nil {
		for _, name := range d.ModuleNames() {
			if name != top.Name {
				d.RemoveModule(name)
			}
		}
	}

	if svc.Logger != nil {
		svc.Logger.Info("No more expansions possible.")
	}
	return nil
}

func loadMapDesign(opts TechmapOptions, svc Services) (*rtlil.Design, error) {
	if len(opts.MapFiles) == 0 {
		return stdcells.Load()
	}
	if opts.Open == nil {
		return nil, errors.New("techmap: MapFiles given without an Open function")
	}
	mapDesign := rtlil.NewDesign()
	for _, fn := range opts.MapFiles {
		dialect := "verilog"
		if strings.HasSuffix(fn, ".il") {
			dialect = "ilang"
		}
		fe, ok := svc.FrontEnds[dialect]
		if !ok {
			return nil, errors.Errorf("techmap: no frontend registered for dialect %q (file %q)", dialect, fn)
		}
		f, err := opts.Open(fn)
		if err != nil {
			return nil, errors.Wrapf(err, "techmap: opening map file %q", fn)
		}
		loaded, err := fe.Load(f, fn)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "techmap: parsing map file %q", fn)
		}
		for _, name := range loaded.ModuleNames() {
			m, _ := loaded.Module(name)
			mapDesign.AddModule(m)
		}
	}
	return mapDesign, nil
}

// Pass is a command-shaped wrapper around Techmap and Flatten, mirroring
// the host toolchain's own Pass abstraction. cmd/techmap does not use it; it
// calls Techmap and Flatten directly.
type Pass interface {
	Name() string
	Execute(args []string, d *rtlil.Design) error
}

// TechmapPass wraps Techmap as a Pass, parsing leading "-map FILE" flags.
// Map files are opened through Open and parsed by the frontend in Services
// registered for their dialect (chosen by file suffix, as in Techmap).
type TechmapPass struct {
	Services Services
	Open     func(filename string) (io.ReadCloser, error)
}

func (p TechmapPass) Name() string { return "techmap" }

func (p TechmapPass) Execute(args []string, d *rtlil.Design) error {
	var mapFiles []string
	i := 0
	for i < len(args) {
		if args[i] == "-map" && i+1 < len(args) {
			mapFiles = append(mapFiles, args[i+1])
			i += 2
			continue
		}
		break
	}
	// Remaining args would feed a selection parser; selection-set handling
	// is an out-of-scope external collaborator, so the caller is expected
	// to have already pushed any selection it wants onto d before calling
	// Execute.
	return Techmap(d, TechmapOptions{MapFiles: mapFiles, Open: p.Open}, p.Services)
}

// FlattenPass wraps Flatten as a Pass.
type FlattenPass struct {
	Services Services
}

func (p FlattenPass) Name() string { return "flatten" }

func (p FlattenPass) Execute(args []string, d *rtlil.Design) error {
	return Flatten(d, FlattenOptions{}, p.Services)
}
