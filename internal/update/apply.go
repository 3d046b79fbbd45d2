package update

import (
	"context"
	"errors"

	"github.com/chis/pipup/internal/logging"
	"github.com/chis/pipup/internal/storage"
)

// Installer installs an exact pinned version of a package. Implemented
// by pip.Service.
type Installer interface {
	Install(ctx context.Context, name, version string) error
}

// ApplyResult summarizes one install pass.
type ApplyResult struct {
	Installed []string `json:"installed"`
	Failed    []string `json:"failed,omitempty"`
	Skipped   []string `json:"skipped,omitempty"`
	Aborted   bool     `json:"aborted,omitempty"`
}

// Applier drives installs for the packages with an update available,
// either unattended or gated on a per-package prompt.
type Applier struct {
	installer Installer
	prompter  *Prompter // nil means automatic mode
	store     storage.Storage
	runID     string
}

// NewApplier creates an applier. A nil prompter installs every update
// without asking (automatic mode).
func NewApplier(installer Installer, prompter *Prompter) *Applier {
	return &Applier{installer: installer, prompter: prompter}
}

// SetStorage enables upgrade audit recording under the given run ID.
func (a *Applier) SetStorage(store storage.Storage, runID string) {
	a.store = store
	a.runID = runID
}

// Apply walks the pending updates in order. A quit answer aborts the
// remaining packages and returns ErrQuit. Install failures are recorded
// and reported but do not stop the pass; pip's own output is the
// diagnostic for the failed package.
func (a *Applier) Apply(ctx context.Context, updates []PackageUpdate) (*ApplyResult, error) {
	result := &ApplyResult{}

	for _, upd := range updates {
		answer := AnswerYes
		if a.prompter != nil {
			var err error
			answer, err = a.prompter.Ask(upd)
			if err != nil {
				return result, err
			}
		}

		switch answer {
		case AnswerQuit:
			result.Aborted = true
			return result, ErrQuit
		case AnswerNo:
			result.Skipped = append(result.Skipped, upd.Name)
			continue
		}

		err := a.installer.Install(ctx, upd.Name, upd.Latest)
		a.recordUpgrade(ctx, upd, err)
		if err != nil {
			logging.Error("install failed for %s: %v", upd.Name, err)
			result.Failed = append(result.Failed, upd.Name)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return result, err
			}
			continue
		}
		result.Installed = append(result.Installed, upd.Name)
	}

	return result, nil
}

func (a *Applier) recordUpgrade(ctx context.Context, upd PackageUpdate, installErr error) {
	if a.store == nil {
		return
	}

	entry := storage.UpgradeLogEntry{
		RunID:       a.runID,
		PackageName: upd.Name,
		FromVersion: upd.Installed,
		ToVersion:   upd.Latest,
		Success:     installErr == nil,
	}
	if installErr != nil {
		entry.Error = installErr.Error()
	}

	if err := a.store.LogUpgrade(ctx, entry); err != nil {
		logging.Warn("failed to record upgrade for %s: %v", upd.Name, err)
	}
}
