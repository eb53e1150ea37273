// SPDX-License-Identifier: MPL-2.0

package simulation

import "github.com/mfsim/mfsim/pkg/pkgregistry"

// PackageKind describes a known package abbreviation.
type PackageKind struct {
	Abbr        string
	Description string
}

// DefaultCatalog lists the package kinds recognized without extra setup.
var DefaultCatalog = pkgregistry.MapCatalog[PackageKind]{
	"gwfdis":  {Abbr: "gwfdis", Description: "structured discretization"},
	"gwfdisv": {Abbr: "gwfdisv", Description: "discretization by vertices"},
	"gwfdisu": {Abbr: "gwfdisu", Description: "unstructured discretization"},
	"gwfic":   {Abbr: "gwfic", Description: "initial conditions"},
	"gwfnpf":  {Abbr: "gwfnpf", Description: "node property flow"},
	"gwfsto":  {Abbr: "gwfsto", Description: "storage"},
	"gwfchd":  {Abbr: "gwfchd", Description: "constant head"},
	"gwfwel":  {Abbr: "gwfwel", Description: "well"},
	"gwfrch":  {Abbr: "gwfrch", Description: "recharge"},
	"gwfoc":   {Abbr: "gwfoc", Description: "output control"},
	"gwtdis":  {Abbr: "gwtdis", Description: "structured discretization"},
	"gwtic":   {Abbr: "gwtic", Description: "initial conditions"},
	"gwtadv":  {Abbr: "gwtadv", Description: "advection"},
	"gwtdsp":  {Abbr: "gwtdsp", Description: "dispersion"},
	"gwtmst":  {Abbr: "gwtmst", Description: "mobile storage and transfer"},
	"gwtssm":  {Abbr: "gwtssm", Description: "source and sink mixing"},
	"gwtoc":   {Abbr: "gwtoc", Description: "output control"},
	"utlobs":  {Abbr: "utlobs", Description: "observations"},
	"utlts":   {Abbr: "utlts", Description: "time series"},
	"utltas":  {Abbr: "utltas", Description: "time array series"},
	"utlats":  {Abbr: "utlats", Description: "array time series"},
}
