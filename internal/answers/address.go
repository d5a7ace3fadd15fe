package answers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/steveyegge/dev-wizard/internal/identity"
	"github.com/steveyegge/dev-wizard/internal/prompt"
)

// AliasPromptMessage asks for a name when a scenario has no identity.
const AliasPromptMessage = "Name for these saved answers:"

// AddressRequest holds what is known when the answer file location is decided.
type AddressRequest struct {
	RepoRoot   string
	ScenarioID string
	Identity   *identity.Selection
	// ExternalPath is the --answers file, if any.
	ExternalPath string
	Interactive  bool
	Prompter     prompt.Prompter
}

// Address is where a run's answers are stored.
type Address struct {
	Alias string
	Path  string
}

// DisplayName is the last "/"-separated piece of the alias.
func (a Address) DisplayName() string {
	pieces := identity.SplitSlug(a.Alias)
	if len(pieces) == 0 {
		return a.Alias
	}
	return pieces[len(pieces)-1]
}

// ResolveAddress picks the alias and file path for a run. With an identity
// the address is fully derived. Without one the alias comes from the external
// answers file name, then an operator-supplied name (interactive only,
// defaulting to the scenario id), then the scenario id itself.
func ResolveAddress(ctx context.Context, req AddressRequest) (Address, error) {
	if req.Identity != nil {
		return addressFor(req, AliasFor(req.ScenarioID, req.Identity)), nil
	}
	if req.ExternalPath != "" {
		base := filepath.Base(req.ExternalPath)
		alias := strings.TrimSuffix(base, filepath.Ext(base))
		return addressFor(req, alias), nil
	}
	if req.Interactive && req.Prompter != nil {
		name, err := req.Prompter.Text(ctx, prompt.TextRequest{
			Message:      AliasPromptMessage,
			InitialValue: req.ScenarioID,
			Placeholder:  req.ScenarioID,
		})
		if err != nil {
			return Address{}, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			name = req.ScenarioID
		}
		return addressFor(req, name), nil
	}
	return addressFor(req, req.ScenarioID), nil
}

func addressFor(req AddressRequest, alias string) Address {
	return Address{Alias: alias, Path: BuildPath(req.RepoRoot, req.ScenarioID, req.Identity, alias)}
}

// RelativePath renders path relative to repoRoot for messages.
func RelativePath(repoRoot, path string) string {
	rel, err := filepath.Rel(repoRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func (a Address) String() string {
	return fmt.Sprintf("%s (%s)", a.Alias, a.Path)
}
