// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	ProjectNotFoundId Id = iota + 1
	ProjectParseErrorId
	InvalidLoadFilterId
	ModelNotFoundId
	PackageNotFoundId
	RelocationFailedId
	StoreOpenFailedId
)

type MarkdownMsg string

type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render formats the guidance with the named glamour style ("dark",
// "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	projectNotFoundIssue = &Issue{
		id: ProjectNotFoundId,
		mdMsg: `
# No project file found!

mfsim looks for ` + "`mfsim.cue`" + ` in the current directory unless
` + "`--project`" + ` names another file.

## Things you can try:
- Point at the project explicitly:
~~~
$ mfsim --project path/to/mfsim.cue resolve model.dis
~~~
- Create a minimal project:
~~~cue
root: "."
models: [{name: "gwf1", path: "gwf1"}]
~~~`,
	}

	projectParseErrorIssue = &Issue{
		id: ProjectParseErrorId,
		mdMsg: `
# Failed to parse the project file!

The project file contains CUE syntax errors or values that do not match the
schema.

## Common issues:
- ` + "`ext_file_action`" + ` must be one of copy_all, copy_none, copy_relative_paths
- ` + "`verbosity`" + ` must be one of quiet, normal, verbose
- ` + "`store.backend`" + ` must be memory or sqlite
- every package needs a ` + "`type`",
	}

	invalidLoadFilterIssue = &Issue{
		id: InvalidLoadFilterId,
		mdMsg: `
# Invalid load filter!

` + "`load_only`" + ` must be a list of package types or names, for example:
~~~cue
load_only: ["dis", "wel", "gwf6-gwf6"]
~~~`,
	}

	modelNotFoundIssue = &Issue{
		id: ModelNotFoundId,
		mdMsg: `
# Model not found!

The model has no relative path registered in the project, so its working
directory is the simulation root.

## Things you can try:
- Add the model to ` + "`models`" + ` in the project file
- Run ` + "`mfsim config show`" + ` to list the registered models`,
	}

	packageNotFoundIssue = &Issue{
		id: PackageNotFoundId,
		mdMsg: `
# Package not found!

Lookup tries, in order: exact name, package type, file name, and the start of
a package name. Matching ignores case.

## Things you can try:
~~~
$ mfsim packages list
$ mfsim packages find wel --type-only
~~~`,
	}

	relocationFailedIssue = &Issue{
		id: RelocationFailedId,
		mdMsg: `
# Relocation failed!

An external file could not be copied to the new simulation root. Files copied
before the failure are in place; the failing file was not written.

## Things you can try:
- Check that the new root is writable
- Check that the source file is readable
- Re-run with ` + "`--verbose`" + ` to see the full error chain`,
	}

	storeOpenFailedIssue = &Issue{
		id: StoreOpenFailedId,
		mdMsg: `
# Could not open the data store!

The sqlite store path in ` + "`store.path`" + ` could not be opened or
initialized.

## Things you can try:
- Make sure the parent directory exists and is writable
- Switch to the in-memory store:
~~~cue
store: {backend: "memory"}
~~~`,
	}

	issues = map[Id]*Issue{
		projectNotFoundIssue.Id():   projectNotFoundIssue,
		projectParseErrorIssue.Id(): projectParseErrorIssue,
		invalidLoadFilterIssue.Id(): invalidLoadFilterIssue,
		modelNotFoundIssue.Id():     modelNotFoundIssue,
		packageNotFoundIssue.Id():   packageNotFoundIssue,
		relocationFailedIssue.Id():  relocationFailedIssue,
		storeOpenFailedIssue.Id():   storeOpenFailedIssue,
	}
)

// Values returns every catalogued issue ordered by id.
func Values() []*Issue {
	all := maps.Values(issues)
	slices.SortFunc(all, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return all
}

func Get(id Id) *Issue {
	return issues[id]
}
