// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	NoEcosystemId Id = iota + 1
	NoVcsId
	DirtyWorkingTreeId
	UnsupportedVcsId
	InvalidVersionId
	ExternalToolFailedId
	ConfigLoadFailedId
	TemplateExistsId
	UncommittedAfterFailedFinalizeId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // tool documentation relevant to the issue
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	noEcosystemIssue = &Issue{
		id: NoEcosystemId,
		mdMsg: `
# No ecosystem found!

We could not read a version from any supported manifest in this folder.

## Things we looked for (in order):
1. ` + "`package.json`" + ` with a ` + "`version`" + ` field
2. ` + "`Cargo.toml`" + ` with a root package (via ` + "`cargo metadata`" + `)

## Things you can try:
- Run the command from the folder that holds your manifest
- Add a ` + "`version`" + ` field to ` + "`package.json`" + `
- Pick an ecosystem explicitly:
~~~
$ repo version get --ecosystem rust
~~~`,
		extLinks: []HttpLink{"https://docs.npmjs.com/cli/configuring-npm/package-json#version"},
	}

	noVcsIssue = &Issue{
		id: NoVcsId,
		mdMsg: `
# No VCS found!

We could not detect a repository for the current folder.

## Things we tried (in order):
1. ` + "`jj root`" + `
2. ` + "`git rev-parse --show-toplevel`" + `
3. A ` + "`.hg`" + ` entry in this folder or any ancestor

## Things you can try:
- Run the command inside a repository
- Choose the VCS explicitly:
~~~
$ repo version bump patch --commit --commit-using git
~~~`,
	}

	dirtyWorkingTreeIssue = &Issue{
		id: DirtyWorkingTreeId,
		mdMsg: `
# Working tree is not clean!

A commit was requested, but ` + "`git status --porcelain`" + ` reported changes.
We refuse to continue because those changes would end up in the same commit.

## Things you can try:
- Commit or stash your changes first:
~~~
$ git stash
~~~
- Or run the command without ` + "`--commit`" + ``,
	}

	unsupportedVcsIssue = &Issue{
		id: UnsupportedVcsId,
		mdMsg: `
# Unsupported VCS!

Mercurial repositories can be detected, but ` + "`repo`" + ` cannot commit to them
or query their history.

## Things you can try:
- Run the command without ` + "`--commit`" + ` and commit manually
- Use ` + "`--commit-using git`" + ` or ` + "`--commit-using jj`" + ` in a colocated repository`,
	}

	invalidVersionIssue = &Issue{
		id: InvalidVersionId,
		mdMsg: `
# Invalid version!

Versions must be valid semantic versions, optionally prefixed with a single ` + "`v`" + `.
Nothing was changed.

## Examples:
- ` + "`1.2.3`" + `
- ` + "`v2.0.0-beta.1`" + `
- ` + "`0.1.0-dev`" + ``,
		extLinks: []HttpLink{"https://semver.org/"},
	}

	externalToolFailedIssue = &Issue{
		id: ExternalToolFailedId,
		mdMsg: `
# An external tool failed!

` + "`repo`" + ` delegates work to tools like ` + "`npm`" + `, ` + "`cargo`" + `, ` + "`bun`" + `, ` + "`git`" + ` and ` + "`jj`" + `.
One of them could not be started or exited with an error.
Any changes it made before failing are left in place.

## Things you can try:
- Check that the tool is installed and in your PATH
- Print every command as it runs and retry:
~~~
$ DEBUG_PRINT_SHELL_COMMANDS=true repo ...
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be parsed or did not match the schema.

## Locations (first match wins):
1. ` + "`.config/repo.json`" + `
2. ` + "`.config/repo.cue`" + `
3. ` + "`.config/repo.toml`" + `

## Things you can try:
- Print the schema:
~~~
$ repo print-schema config
~~~
- Check which file is used:
~~~
$ repo config path
~~~`,
	}

	templateExistsIssue = &Issue{
		id: TemplateExistsId,
		mdMsg: `
# File already exists!

The boilerplate file is already present and was left untouched.

## Things you can try:
- Open the existing file:
~~~
$ repo boilerplate ci edit
~~~
- Replace it:
~~~
$ repo boilerplate ci add --overwrite
~~~`,
	}

	uncommittedAfterFailedFinalizeIssue = &Issue{
		id: UncommittedAfterFailedFinalizeId,
		mdMsg: `
# Changes were made but not committed!

The operation itself succeeded, but the final commit failed.
The changes are still in your working copy.

## Things you can try:
- Inspect the changes:
~~~
$ git diff   # or: jj diff
~~~
- Commit them yourself, or revert them:
~~~
$ git checkout -- .   # or: jj abandon
~~~`,
	}

	issues = map[Id]*Issue{
		noEcosystemIssue.Id():                    noEcosystemIssue,
		noVcsIssue.Id():                          noVcsIssue,
		dirtyWorkingTreeIssue.Id():               dirtyWorkingTreeIssue,
		unsupportedVcsIssue.Id():                 unsupportedVcsIssue,
		invalidVersionIssue.Id():                 invalidVersionIssue,
		externalToolFailedIssue.Id():             externalToolFailedIssue,
		configLoadFailedIssue.Id():               configLoadFailedIssue,
		templateExistsIssue.Id():                 templateExistsIssue,
		uncommittedAfterFailedFinalizeIssue.Id(): uncommittedAfterFailedFinalizeIssue,
	}
)

// Values returns every issue ordered by ID.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
