package app

import (
	"github.com/specialistvlad/texgrid/internal/registry"
	"github.com/specialistvlad/texgrid/modules/normalmap"
)

// coreModules is the definitive list of all node type modules that are
// compiled into the texgrid binary.
var coreModules = []registry.Module{
	&normalmap.Module{},
}
